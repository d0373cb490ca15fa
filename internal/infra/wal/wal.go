package wal

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"tillpoint/internal/pkg/errs"
)

var (
	ErrAppendFailed  = errs.New("wal append failed")
	ErrCorruptRecord = errs.New("wal record corrupt")
)

// Log is the durable, append-only operation journal. Records are JSON
// lines with monotonic sequence numbers; every append is synced to disk
// before it returns, so a record's presence implies durability.
type Log struct {
	mu   sync.Mutex
	file *os.File
	path string
	seq  uint64
}

func Open(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open wal file")
	}

	l := &Log{file: file, path: path}

	records, err := readAll(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if n := len(records); n > 0 {
		l.seq = records[n-1].Seq
	}

	return l, nil
}

// Append writes one record and syncs the file. The returned sequence
// number is assigned under the log's lock, so appends are totally ordered.
func (l *Log) Append(op OpType, payload any) (uint64, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, errs.Mark(err, ErrAppendFailed)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := Record{
		Seq:     l.seq + 1,
		At:      time.Now().UTC(),
		Op:      op,
		Payload: raw,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return 0, errs.Mark(err, ErrAppendFailed)
	}
	line = append(line, '\n')

	if _, err := l.file.Write(line); err != nil {
		return 0, errs.Mark(err, ErrAppendFailed)
	}
	if err := l.file.Sync(); err != nil {
		return 0, errs.Mark(err, ErrAppendFailed)
	}

	l.seq = rec.Seq
	return rec.Seq, nil
}

func (l *Log) LastSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// ReadAfter returns all records with Seq > afterSeq, in order.
func (l *Log) ReadAfter(afterSeq uint64) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := readAll(l.file)
	if err != nil {
		return nil, err
	}

	out := records[:0:0]
	for _, rec := range records {
		if rec.Seq > afterSeq {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Compact drops records already covered by a snapshot checkpoint. The
// remainder is rewritten to a temp file which atomically replaces the log.
func (l *Log) Compact(upToSeq uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := readAll(l.file)
	if err != nil {
		return err
	}

	tmpPath := l.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.Wrap(err, "failed to create compacted wal")
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if rec.Seq <= upToSeq {
			continue
		}
		line, err := json.Marshal(rec)
		if err != nil {
			_ = tmp.Close()
			return errs.Wrap(err, "failed to rewrite wal record")
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			_ = tmp.Close()
			return errs.Wrap(err, "failed to rewrite wal record")
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "failed to flush compacted wal")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "failed to sync compacted wal")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "failed to close compacted wal")
	}

	if err := l.file.Close(); err != nil {
		return errs.Wrap(err, "failed to close wal")
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return errs.Wrap(err, "failed to swap compacted wal")
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return errs.Wrap(err, "failed to reopen wal")
	}
	l.file = file
	return nil
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// readAll parses every line of the log. A torn final line (crash during
// append) is tolerated and dropped; corruption anywhere else is an error.
func readAll(file *os.File) ([]Record, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errs.Wrap(err, "failed to seek wal")
	}

	var (
		records []Record
		lastErr error
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if lastErr != nil {
			// a broken record followed by a valid one is real corruption
			return nil, ErrCorruptRecord
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			lastErr = err
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(err, "failed to read wal")
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return nil, errs.Wrap(err, "failed to seek wal")
	}
	return records, nil
}
