package store

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Name,Gender,Age,Experience3D,Question,Model,Rating\n"

func newStore(t *testing.T) *CSVStore {
	t.Helper()
	return NewCSVStore(filepath.Join(t.TempDir(), "survey_results.csv"), nil)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func aliceRows() [][]string {
	return [][]string{
		{"Alice", "F", "25", "Beginner", "q1", "Model A", "4"},
		{"Alice", "F", "25", "Beginner", "q1", "Model B", "5"},
	}
}

func TestAppendFreshFileWritesHeaderThenRows(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(context.Background(), aliceRows()))

	assert.Equal(t, header+
		"Alice,F,25,Beginner,q1,Model A,4\n"+
		"Alice,F,25,Beginner,q1,Model B,5\n", readFile(t, s.Path()))
}

func TestAppendNeverDuplicatesHeader(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, aliceRows()))
	require.NoError(t, s.Append(ctx, aliceRows()))
	require.NoError(t, s.Append(ctx, nil))

	content := readFile(t, s.Path())
	assert.Equal(t, 1, strings.Count(content, "Name,Gender"))
	assert.True(t, strings.HasPrefix(content, header))
}

func TestAppendOnlyLineCount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	const submissions = 7
	for i := 0; i < submissions; i++ {
		require.NoError(t, s.Append(ctx, aliceRows()))
	}

	lines := strings.Split(strings.TrimSuffix(readFile(t, s.Path()), "\n"), "\n")
	assert.Len(t, lines, 1+submissions*len(aliceRows()))
}

func TestAppendKeepsExistingFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("existing\n"), 0644))

	require.NoError(t, s.Append(context.Background(), aliceRows()[:1]))

	assert.Equal(t, "existing\nAlice,F,25,Beginner,q1,Model A,4\n", readFile(t, s.Path()))
}

func TestAppendEmptyBatchCreatesHeaderOnly(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(context.Background(), [][]string{}))
	assert.Equal(t, header, readFile(t, s.Path()))
}

func TestAppendQuotesDelimiters(t *testing.T) {
	s := newStore(t)
	rows := [][]string{{"Smith, Alice", "F", "25", "said \"hi\"", "q1", "Model A", "4"}}

	require.NoError(t, s.Append(context.Background(), rows))

	f, err := os.Open(s.Path())
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rows[0], records[1])
}

func TestAppendConcurrentSubmissions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, aliceRows()))
		}()
	}
	wg.Wait()

	content := readFile(t, s.Path())
	assert.True(t, strings.HasPrefix(content, header))
	assert.Equal(t, 1, strings.Count(content, "Name,Gender"))

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 1+workers*2)
	// 同一次提交的两行相邻
	for i := 1; i < len(lines); i += 2 {
		assert.True(t, strings.HasSuffix(lines[i], "Model A,4"), lines[i])
		assert.True(t, strings.HasSuffix(lines[i+1], "Model B,5"), lines[i+1])
	}
}

func TestIndependentStoresRaceForHeader(t *testing.T) {
	const writers = 8
	for round := 0; round < 20; round++ {
		path := filepath.Join(t.TempDir(), "survey_results.csv")

		// 每个 store 有自己的锁, 只有 link 保证表头唯一
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			s := NewCSVStore(path, nil)
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				assert.NoError(t, s.Append(context.Background(), aliceRows()[:1]))
			}()
		}
		close(start)
		wg.Wait()

		lines := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\n")
		require.Len(t, lines, 1+writers, "round %d", round)
		assert.Equal(t, strings.TrimSuffix(header, "\n"), lines[0])
		for _, line := range lines[1:] {
			assert.Equal(t, "Alice,F,25,Beginner,q1,Model A,4", line)
		}
	}
}

func TestAppendFailsWhenDirectoryMissing(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "missing", "results.csv"), nil)

	err := s.Append(context.Background(), aliceRows())
	require.Error(t, err)

	_, statErr := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppendHonoursCancelledContextWhileLocked(t *testing.T) {
	s := newStore(t)
	unlock, err := s.locker.Lock(context.Background())
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Append(ctx, aliceRows()), context.Canceled)
}

func TestOpen(t *testing.T) {
	s := newStore(t)

	_, _, err := s.Open()
	assert.ErrorIs(t, err, util.ErrResultsNotFound)

	require.NoError(t, s.Append(context.Background(), aliceRows()))
	f, size, err := s.Open()
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
	assert.Equal(t, readFile(t, s.Path()), string(data))
}

func TestWritable(t *testing.T) {
	assert.NoError(t, newStore(t).Writable())
	assert.Error(t, NewCSVStore(filepath.Join(t.TempDir(), "missing", "x.csv"), nil).Writable())
}
