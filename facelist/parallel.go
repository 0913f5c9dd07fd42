package facelist

import (
	"sort"
	"sync"

	"github.com/notargets/facelist/utils"
)

const shardBatchSize = 256

// faceMsg carries one emitted face to the shard owning its bucket
type faceMsg struct {
	zone, slot int
	nodes      []int
}

// runSharded emits zones from ex.Workers goroutines, each working a
// contiguous zone range, and routes every face to the single goroutine that
// owns its bucket. The drain starts only after every emitter and shard
// goroutine has returned.
func (ex *Extractor) runSharded(zl *ZoneList, materials []int, method BoundaryMethod,
	keep func(zone int) bool) (res *registryResult, err error) {
	var (
		windows []zoneWindow
		nw      = ex.Workers
	)
	if err = zl.windows(func(w zoneWindow) error {
		windows = append(windows, w)
		return nil
	}); err != nil {
		return
	}
	var (
		pm       = utils.NewPartitionMap(nw, len(windows))
		shards   = make([]*registry, nw)
		inbox    = make([]chan []faceMsg, nw)
		emitErrs = make([]error, nw)
		solids   = make([]bool, nw)
		shardWg  = sync.WaitGroup{}
		emitWg   = sync.WaitGroup{}
	)
	for s := 0; s < nw; s++ {
		shards[s] = newRegistry(zl.NumNodes, method, materials)
		inbox[s] = make(chan []faceMsg, nw)
		shardWg.Add(1)
		go func(rg *registry, in <-chan []faceMsg) {
			defer shardWg.Done()
			for batch := range in {
				for _, msg := range batch {
					rg.insert(msg.zone, msg.slot, msg.nodes)
				}
			}
		}(shards[s], inbox[s])
	}
	for n := 0; n < nw; n++ {
		emitWg.Add(1)
		go func(n int) {
			defer emitWg.Done()
			var (
				kMin, kMax = pm.GetBucketRange(n)
				em         = newEmitter(zl.Nodes, ex.Unsupported)
				batches    = make([][]faceMsg, nw)
				size       = shards[0].size
			)
			route := func(zone, slot int, nodes []int) error {
				s := ((nodes[minPosition(nodes)]%size + size) % size) % nw
				batches[s] = append(batches[s], faceMsg{zone, slot, append([]int(nil), nodes...)})
				if len(batches[s]) == shardBatchSize {
					inbox[s] <- batches[s]
					batches[s] = make([]faceMsg, 0, shardBatchSize)
				}
				return nil
			}
			for k := kMin; k < kMax; k++ {
				if emitErrs[n] = em.emitZone(windows[k], route); emitErrs[n] != nil {
					break
				}
			}
			for s, batch := range batches {
				if len(batch) > 0 {
					inbox[s] <- batch
				}
			}
			solids[n] = em.solids
		}(n)
	}
	emitWg.Wait()
	for s := 0; s < nw; s++ {
		close(inbox[s])
	}
	shardWg.Wait()
	for _, e := range emitErrs {
		if e != nil {
			return nil, e
		}
	}

	merged := newRegistry(zl.NumNodes, method, materials)
	res = &registryResult{}
	for s, rg := range shards {
		for key, chain := range rg.buckets {
			// restore the serial insertion order
			sort.Slice(chain, func(i, j int) bool {
				if chain[i].zone != chain[j].zone {
					return chain[i].zone < chain[j].zone
				}
				return chain[i].slot < chain[j].slot
			})
			merged.buckets[key] = chain
		}
		res.emitted += rg.emitted
		res.cancelled += rg.cancelled
		res.solids = res.solids || solids[s]
	}
	res.faces = merged.drain(keep)
	return
}
