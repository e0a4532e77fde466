package nowplaying

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

func TestStore_EmptyUntilFirstReplace(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Current())
}

func TestStore_ReplaceSwapsWholesale(t *testing.T) {
	store := NewStore()

	first := &domain.Track{Title: "Song A", VideoID: "abc123"}
	store.Replace(first)
	require.Same(t, first, store.Current())

	second := &domain.Track{Title: "Song B", VideoID: "def456"}
	store.Replace(second)
	assert.Same(t, second, store.Current())
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		track := &domain.Track{Title: "t", VideoID: string(rune('a' + i))}
		go func() {
			defer wg.Done()
			store.Replace(track)
		}()
		go func() {
			defer wg.Done()
			_ = store.Current()
		}()
	}
	wg.Wait()

	assert.NotNil(t, store.Current())
}
