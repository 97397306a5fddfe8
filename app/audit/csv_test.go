package audit

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	e "nuclight.org/feeds-tg-bot/pkg/entities"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), utf8BOM), "file must start with a BOM")
	assert.Equal(t, 1, strings.Count(string(data), utf8BOM))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM))).ReadAll()
	require.NoError(t, err)

	return records
}

func TestCSVFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot_log.csv")

	f, err := NewCSVFile(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "file is created on first write only")

	const n = 5
	for i := 0; i < n; i++ {
		row := Row{
			UserID:   fmt.Sprint(100 + i),
			Nickname: "@user",
			Motion:   e.MotionKeyboardTyping,
			API:      none,
			Date:     "2025-09-13",
			Time:     "12:00:00",
			Answer:   "answer, with comma",
		}
		require.NoError(t, f.Write(context.Background(), row))
	}

	records := readCSV(t, path)
	require.Len(t, records, n+1)
	assert.Equal(t, Header, records[0])
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprint(100+i), records[i+1][0])
		assert.Equal(t, "answer, with comma", records[i+1][6])
	}
}

func TestCSVFileKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_log.csv")
	require.NoError(t, os.WriteFile(path, []byte(utf8BOM+strings.Join(Header, ",")+"\n"), 0o644))

	f, err := NewCSVFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Write(context.Background(), Row{UserID: "1"}))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[1][0])
}

func TestCSVFileWriteError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot_log.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	f := &CSVFile{Path: path}
	assert.Error(t, f.Write(context.Background(), Row{UserID: "1"}))
}
