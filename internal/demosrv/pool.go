package demosrv

import (
	"net"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// connWorkerFunc processes one queued connection. Adapted from the
// teacher's WorkerFunction in internal/worker.go, narrowed from `any` to
// net.Conn since this pool only ever dispatches connections.
type connWorkerFunc func(t *tomb.Tomb, conn net.Conn) error

// workerPool is a fixed-size pool of goroutines draining a shared
// connection queue, grounded on internal/worker.go's WorkerPool. The
// teacher's pool was referenced by internal/net/server.go through a
// phantom fenrir/internal/utils package that does not exist anywhere in
// the retrieved source; this keeps the teacher's Setup/worker shape but
// adds the AddTask method the real caller needed all along.
type workerPool struct {
	n     int
	tasks chan net.Conn
}

func newWorkerPool(size int) *workerPool {
	return &workerPool{
		n:     size,
		tasks: make(chan net.Conn, taskChanSize),
	}
}

// AddTask queues a connection for a worker to pick up.
func (p *workerPool) AddTask(conn net.Conn) {
	p.tasks <- conn
}

// Setup keeps p.n workers alive under the tomb until it starts dying.
func (p *workerPool) Setup(t *tomb.Tomb, work connWorkerFunc) {
	log.Info().Int("workers", p.n).Msg("demosrv: starting worker pool")
	active := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if active < p.n {
				t.Go(func() error {
					err := p.worker(t, work)
					active--
					return err
				})
				active++
			}
		}
	}
}

func (p *workerPool) worker(t *tomb.Tomb, work connWorkerFunc) error {
	select {
	case <-t.Dying():
		return nil
	case conn := <-p.tasks:
		if err := work(t, conn); err != nil {
			log.Error().Err(err).Msg("demosrv: worker exiting")
			return err
		}
	}
	return nil
}
