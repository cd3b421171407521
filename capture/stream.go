package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Thiagojm/rngbench/bitstat"
)

// DefaultChunkSize is the number of bytes requested per read.
const DefaultChunkSize = 1024

// ErrIdle is returned when the source delivers nothing for longer than the
// configured idle timeout.
var ErrIdle = errors.New("source idle")

// Options tune Stream.
type Options struct {
	// ChunkSize is the read size in bytes. Zero means DefaultChunkSize.
	ChunkSize int
	// IdleTimeout aborts the capture when no byte arrives for this long.
	// Zero disables the check.
	IdleTimeout time.Duration
	// OnProgress, if set, is called after every chunk written.
	OnProgress func(done, total int64)
}

// Result summarizes a capture.
type Result struct {
	Bytes int64
	Ones  int64
}

// OnesPercent returns the share of set bits in the captured bytes.
func (r Result) OnesPercent() float64 {
	return bitstat.Percent(r.Ones, r.Bytes)
}

// Stream copies exactly total bytes from src to dst in fixed-size chunks.
// Zero-length reads, as produced by serial read timeouts, are retried. The
// returned Result reflects what was written even when an error is returned.
func Stream(ctx context.Context, src io.Reader, dst io.Writer, total int64, opts Options) (Result, error) {
	var res Result
	if total <= 0 {
		return res, errors.New("total must be > 0")
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	buf := make([]byte, chunk)
	lastData := time.Now()

	for res.Bytes < total {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		want := int64(chunk)
		if remain := total - res.Bytes; remain < want {
			want = remain
		}
		n, err := src.Read(buf[:want])
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return res, fmt.Errorf("write: %w", werr)
			}
			res.Bytes += int64(n)
			res.Ones += int64(bitstat.CountOnes(buf[:n]))
			lastData = time.Now()
			if opts.OnProgress != nil {
				opts.OnProgress(res.Bytes, total)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return res, fmt.Errorf("source ended after %d/%d bytes: %w", res.Bytes, total, io.ErrUnexpectedEOF)
			}
			return res, fmt.Errorf("read error: %w", err)
		}
		if n == 0 && opts.IdleTimeout > 0 && time.Since(lastData) > opts.IdleTimeout {
			return res, fmt.Errorf("%w for %s after %d/%d bytes", ErrIdle, opts.IdleTimeout, res.Bytes, total)
		}
	}
	return res, nil
}

// retryReader turns zero-length reads into retries so bufio scanners do not
// give up on a quiet serial line.
type retryReader struct {
	ctx context.Context
	r   io.Reader
}

func (rr retryReader) Read(p []byte) (int, error) {
	for {
		if err := rr.ctx.Err(); err != nil {
			return 0, err
		}
		n, err := rr.r.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
	}
}

// Lines calls fn with every newline-terminated ASCII line read from src until
// src ends or ctx is cancelled. Lines containing non-ASCII bytes are skipped.
func Lines(ctx context.Context, src io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(retryReader{ctx: ctx, r: src})
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if !isASCII(line) {
			continue
		}
		fn(string(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return false
		}
	}
	return true
}
