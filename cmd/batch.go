/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/agrosense/fertadvisor/internal/iofs"
	"github.com/agrosense/fertadvisor/pkg/engine"
	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// batchChunk is the number of lines processed concurrently before
// their results are written.
const batchChunk = 1_000

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	var output string

	batchCmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Recommend fertilizers for requests from a JSON lines file",
		Long: `Process a file where every line is a request such as
  {"region": "Punjab"}
  {"sample": [20, 12, 40]}
  {"state": "Kerala", "sample": [20, 12, 40]}

Results are written as JSON lines in input order. A failed request
produces {"line": N, "error": "...", "code": N} and does not stop
processing. Use '-' to read from standard input.

Examples:
  fertadvisor batch requests.jsonl
  cat requests.jsonl | fertadvisor batch - --output results.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBatch(cmd, args[0], output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	batchCmd.Flags().StringVarP(
		&output, "output", "o", "", "output file (default: standard output)",
	)

	return batchCmd
}

func runBatch(cmd *cobra.Command, input, output string) error {
	ctx := context.Background()
	start := time.Now()

	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return iofs.ReadFileError(input, err)
		}
		defer f.Close()
		r = f
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return iofs.CopyFileError(output, err)
		}
		defer f.Close()
		w = f
	}

	eng, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	stats, err := processBatch(ctx, eng, r, w, cfg.JobsNumber)
	if err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Batch finished",
		"requests", stats.requests,
		"failed", stats.failed,
		"duration", dur,
	)
	if output != "" {
		gn.Info("Processed <em>%s</em> requests (%s failed) in %s",
			humanize.Comma(int64(stats.requests)),
			humanize.Comma(int64(stats.failed)), dur)
	}
	return nil
}

type batchStats struct {
	requests int
	failed   int
}

type batchLine struct {
	num  int
	data string
}

// lineError is written instead of a result for a failed request.
type lineError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// processBatch reads requests line by line and writes one output line
// per non-empty input line. Chunks of lines are handled by up to jobs
// goroutines; output keeps the input order.
func processBatch(
	ctx context.Context,
	eng *engine.Engine,
	r io.Reader,
	w io.Writer,
	jobs int,
) (batchStats, error) {
	var stats batchStats
	jobs = max(jobs, 1)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)

	chunk := make([]batchLine, 0, batchChunk)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		out, failed, err := recommendChunk(ctx, eng, chunk, jobs)
		if err != nil {
			return err
		}
		for _, v := range out {
			if _, err = bw.Write(v); err != nil {
				return err
			}
			if err = bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		stats.requests += len(chunk)
		stats.failed += failed
		chunk = chunk[:0]
		return nil
	}

	var num int
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		chunk = append(chunk, batchLine{num: num, data: line})
		if len(chunk) == batchChunk {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	if err := flush(); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}

// recommendChunk returns encoded outputs in the order of lines and the
// number of failed requests.
func recommendChunk(
	ctx context.Context,
	eng *engine.Engine,
	lines []batchLine,
	jobs int,
) ([][]byte, int, error) {
	out := make([][]byte, len(lines))
	failed := make([]bool, len(lines))
	enc := gnfmt.GNjson{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := recommendLine(eng, line.data)
			if err != nil {
				failed[i] = true
				out[i], err = enc.Encode(lineError{
					Line:  line.num,
					Error: errorText(err),
					Code:  int(errcode.Of(err)),
				})
				return err
			}
			out[i], err = enc.Encode(res)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var count int
	for _, v := range failed {
		if v {
			count++
		}
	}
	return out, count, nil
}

func recommendLine(eng *engine.Engine, line string) (*engine.Result, error) {
	req, err := engine.ParseRequest([]byte(line))
	if err != nil {
		return nil, err
	}
	return eng.Recommend(req)
}

var markup = strings.NewReplacer("<em>", "", "</em>", "")

// errorText returns the user-facing message of a *gn.Error without
// markup, or the plain error text for other errors.
func errorText(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Msg != "" {
		return markup.Replace(fmt.Sprintf(gnErr.Msg, gnErr.Vars...))
	}
	return err.Error()
}
