// Command hivebench runs the large- and small-scale churn scenarios
// against a Hive[int64], seeding each dataset from (and persisting each
// run's metrics to) a sqlite3 database, and reports the batch as JSON.
//
// Grounded on this module's main.go orchestration style (flag parsing,
// panic-on-setup-failure, a single top-level run function) and on
// syncharvester.go's sqlite3 + sonnet wiring pattern.
package main

import (
	"encoding/binary"
	"flag"
	"os"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/crypto/sha3"

	"hive"
)

type report struct {
	Scenario   string `json:"scenario"`
	Size       int    `json:"size"`
	Erased     int    `json:"erased"`
	FinalSize  int    `json:"final_size"`
	Capacity   int    `json:"capacity"`
	BlockCount int    `json:"block_count"`
	ElapsedNS  int64  `json:"elapsed_ns"`
}

type scenario struct {
	name     string
	size     int
	erasePct int
}

func main() {
	dbPath := flag.String("db", "hivebench.db", "sqlite3 database path")
	seed := flag.Uint64("seed", 1, "deterministic PRNG seed")
	trace := flag.Bool("trace", false, "log Hive block-lifecycle and bulk-rollback events")
	flag.Parse()
	hive.Trace = *trace

	scenarios := []scenario{
		{name: "large_churn", size: 500_000, erasePct: 30},
		{name: "small_churn", size: 30_000, erasePct: 50},
	}

	db := openDatabase(*dbPath)
	defer db.Close()
	if err := createSchema(db); err != nil {
		panic("hivebench: schema setup failed: " + err.Error())
	}

	rng := newDeterministicRNG(*seed)
	reports := make([]report, 0, len(scenarios))
	for _, sc := range scenarios {
		if err := seedDataset(db, sc.name, sc.size, rng); err != nil {
			panic("hivebench: seed failed for " + sc.name + ": " + err.Error())
		}
		values, err := loadDataset(db, sc.name)
		if err != nil {
			panic("hivebench: load failed for " + sc.name + ": " + err.Error())
		}

		rep := runScenario(sc, values, rng)
		if err := persistRun(db, rep); err != nil {
			panic("hivebench: persist failed for " + sc.name + ": " + err.Error())
		}
		reports = append(reports, rep)
	}

	out, err := sonnet.Marshal(reports)
	if err != nil {
		panic("hivebench: report marshal failed: " + err.Error())
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")
}

func runScenario(sc scenario, values []int64, rng *deterministicRNG) report {
	start := time.Now()

	h := hive.New[int64]()
	its := h.InsertSlice(values)

	erased := 0
	target := len(values) * sc.erasePct / 100
	for i := 0; i < len(its) && erased < target; i++ {
		if rng.next()%2 == 0 {
			h.Erase(its[i])
			erased++
		}
	}

	return report{
		Scenario:   sc.name,
		Size:       sc.size,
		Erased:     erased,
		FinalSize:  h.Size(),
		Capacity:   h.Capacity(),
		BlockCount: h.BlockCount(),
		ElapsedNS:  time.Since(start).Nanoseconds(),
	}
}

// deterministicRNG is a Keccak-based hash-chain pseudo-random stream:
// seed once, then repeatedly hash the running state to produce the next
// word. Used in place of math/rand so a benchmark run's dataset and
// churn pattern are exactly reproducible across machines and Go versions
// given the same -seed.
type deterministicRNG struct {
	state uint64
}

func newDeterministicRNG(seed uint64) *deterministicRNG {
	return &deterministicRNG{state: seed}
}

func (r *deterministicRNG) next() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], r.state)

	digest := sha3.NewLegacyKeccak256()
	digest.Write(buf[:])
	sum := digest.Sum(nil)

	r.state = binary.LittleEndian.Uint64(sum[:8])
	return r.state
}
