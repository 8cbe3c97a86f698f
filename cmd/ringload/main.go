// Command ringload spawns concurrent producer and reader goroutines
// against a single Store to exercise the CAS-retry append path and the
// three read cases under real contention, the same load-generator-over-the-
// library-directly shape as the teacher's cmd/test_worker and
// cmd/test_unified.
package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/basinrelay/ringstore"
)

type loadMapping struct {
	id   uint64
	tag  uuid.UUID
	born time.Time
}

func (m loadMapping) MappingID() uint64 { return m.id }

func main() {
	capacity := flag.Uint("capacity", 256, "logical ring capacity")
	producers := flag.Int("producers", 8, "number of concurrent producer goroutines")
	readers := flag.Int("readers", 2, "number of concurrent reader goroutines")
	duration := flag.Duration("duration", 3*time.Second, "how long to run")
	flag.Parse()

	store, err := ringstore.NewStore(uint32(*capacity), ringstore.WithLogLevel("warn"))
	if err != nil {
		log.Fatalf("ringload: new store: %v", err)
	}

	var nextID atomic.Uint64
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for p := 0; p < *producers; p++ {
		producerTag := uuid.New()
		wg.Add(1)
		go func(tag uuid.UUID) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					id := nextID.Add(1)
					store.Append(loadMapping{id: id, tag: tag, born: time.Now()})
				}
			}
		}(producerTag)
	}

	for r := 0; r < *readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cursor uint64
			for {
				select {
				case <-stop:
					return
				default:
					batch := store.Read(cursor)
					if len(batch.Messages) > 0 {
						cursor = batch.NextCursor + uint64(len(batch.Messages))
					}
				}
			}
		}()
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()

	stats := store.Stats()
	fmt.Printf("appends=%d casRetries=%d maxCASRetries=%d overruns=%d fragmentInstalls=%d fragmentOverwrites=%d\n",
		stats.TotalAppends, stats.CASRetries, stats.MaxCASRetries, stats.Overruns,
		stats.FragmentsInstalled, stats.FragmentsOverwritten)
}
