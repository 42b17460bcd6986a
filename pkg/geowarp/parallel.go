package geowarp

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// BatchOptions controls parallel frame rendering and error handling.
type BatchOptions struct {
	// Parallel enables concurrent rendering with a worker pool.
	Parallel bool

	// Workers is the number of rendering goroutines. 0 defaults to
	// runtime.NumCPU(). Each worker owns its frame's buffers exclusively;
	// no state is shared between frames.
	Workers int

	// SkipErrors keeps rendering when individual frames fail. Failed
	// frames leave a nil slot in the result slice and their errors are
	// collected. When false, the first error stops the batch. An
	// incomplete composite is never emitted either way; a failed frame is
	// a missing frame.
	SkipErrors bool

	// Progress is an optional callback, called after each frame finishes
	// (successfully or not) with (done, total).
	Progress func(done, total int)

	// ErrorLog is an optional writer for per-frame error details.
	ErrorLog io.Writer
}

// DefaultBatchOptions returns batch options with sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// RenderFrames renders a batch of frames for one region, in input order.
//
// Frames are independent, so the batch runs a worker pool across them. The
// returned slice has one slot per input; with SkipErrors set, failed frames
// leave nil slots (the caller's frame numbering stays intact for movie
// assembly) and the collected errors are returned alongside.
//
// Example:
//
//	frames, errs := r.RenderFrames(region, inputs, geowarp.BatchOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rRendering: %d/%d", done, total)
//	    },
//	    ErrorLog: os.Stderr,
//	})
func (r *Renderer) RenderFrames(region Region, inputs []FrameInput, opts BatchOptions) ([]*Frame, []error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if !opts.Parallel {
		return r.renderFramesSerial(region, inputs, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	type result struct {
		index int
		frame *Frame
		err   error
	}

	jobs := make(chan int, len(inputs))
	results := make(chan result, len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				frame, err := r.RenderFrame(region, inputs[index])
				results <- result{index: index, frame: frame, err: err}
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	frames := make([]*Frame, len(inputs))
	var errs []error
	done := 0

	for res := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(inputs))
		}
		if res.err != nil {
			err := fmt.Errorf("frame %d: %w", res.index, res.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error rendering frame: %v\n", err)
			}
			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}
		frames[res.index] = res.frame
	}
	return frames, errs
}

// renderFramesSerial renders one frame at a time (Parallel=false fallback).
func (r *Renderer) renderFramesSerial(region Region, inputs []FrameInput, opts BatchOptions) ([]*Frame, []error) {
	frames := make([]*Frame, len(inputs))
	var errs []error

	for i, in := range inputs {
		frame, err := r.RenderFrame(region, in)
		if err != nil {
			err = fmt.Errorf("frame %d: %w", i, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error rendering frame: %v\n", err)
			}
			if opts.SkipErrors {
				errs = append(errs, err)
				if opts.Progress != nil {
					opts.Progress(i+1, len(inputs))
				}
				continue
			}
			return nil, []error{err}
		}
		frames[i] = frame
		if opts.Progress != nil {
			opts.Progress(i+1, len(inputs))
		}
	}
	return frames, errs
}
