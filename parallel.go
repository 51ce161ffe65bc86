package restauro

import (
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

// parallelBlock is the number of consecutive indices one goroutine handles.
const parallelBlock = 16

// parallelDo executes fn(i) for i in [start, stop), split into blocks of
// parallelBlock consecutive indices. At most workers blocks run at once;
// workers <= 0 means GOMAXPROCS. fn must only write state owned by index i.
func parallelDo(workers, start, stop int, fn func(i int)) {
	count := stop - start
	if count <= 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 || count <= parallelBlock {
		for i := start; i < stop; i++ {
			fn(i)
		}
		return
	}

	swg := sizedwaitgroup.New(workers)
	for from := start; from < stop; from += parallelBlock {
		to := from + parallelBlock
		if to > stop {
			to = stop
		}
		// Blocks until a worker slot frees up.
		swg.Add()
		go func(from, to int) {
			defer swg.Done()
			for i := from; i < to; i++ {
				fn(i)
			}
		}(from, to)
	}
	swg.Wait()
}
