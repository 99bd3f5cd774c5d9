package kv

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ralekv/ralekv/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for ralekv servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfNumThreads = 10
	perfKeySpread  = 100
	perfDuration   = 10
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "duration"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("How long to run each benchmark (in seconds)"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfDuration = viper.GetInt("duration")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for ralekv servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d, Keys: %d, Duration: %ds\n", perfNumThreads, perfKeySpread, perfDuration)
	fmt.Println()

	fmt.Println("starting tests...")
	fmt.Println()
	fmt.Printf("%-10s%12s%14s%14s%14s%14s%14s\n", "test", "ops", "ops/sec", "mean", "p50", "p95", "p99")

	runBenchmark("put", func(counter int) error {
		_, err := kvClient.Put(testKey("put", counter), "test")
		return err
	})

	// seed keys for the read benchmark
	for i := 0; i < perfKeySpread; i++ {
		if _, err := kvClient.Put(testKey("get", i), "test"); err != nil {
			return fmt.Errorf("failed to seed keys: %w", err)
		}
	}

	runBenchmark("get", func(counter int) error {
		_, err := kvClient.Get(testKey("get", counter))
		return err
	})

	runBenchmark("status", func(counter int) error {
		_, err := kvClient.Status()
		return err
	})

	runBenchmark("mixed", func(counter int) error {
		if counter%2 == 0 {
			_, err := kvClient.Put(testKey("mixed", counter), "test")
			return err
		}
		_, err := kvClient.Get(testKey("get", counter))
		return err
	})

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// testKey returns the counter-th benchmark key (with wraparound).
func testKey(prefix string, counter int) string {
	return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, counter%perfKeySpread)
}

// runBenchmark drives op from perfNumThreads goroutines for the configured
// duration and records every latency in a timer metric.
func runBenchmark(test string, op func(counter int) error) {
	if shouldSkip(test) {
		fmt.Printf("%-10sskipped\n", test)
		return
	}

	timer := gometrics.NewTimer()
	defer timer.Stop()

	errorCount := gometrics.NewCounter()
	deadline := time.Now().Add(time.Duration(perfDuration) * time.Second)

	var wg sync.WaitGroup
	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			counter := worker
			for time.Now().Before(deadline) {
				start := time.Now()
				if err := op(counter); err != nil {
					errorCount.Inc(1)
				}
				timer.UpdateSince(start)
				counter += perfNumThreads
			}
		}(t)
	}
	wg.Wait()

	printResult(test, timer)
	if errorCount.Count() > 0 {
		fmt.Printf("%-10s%d requests failed\n", "", errorCount.Count())
	}
}

// printResult prints one line of the benchmark result table.
func printResult(test string, timer gometrics.Timer) {
	fmt.Printf("%-10s%12d%14.0f%14s%14s%14s%14s\n",
		test,
		timer.Count(),
		timer.RateMean(),
		time.Duration(timer.Mean()),
		time.Duration(timer.Percentile(0.5)),
		time.Duration(timer.Percentile(0.95)),
		time.Duration(timer.Percentile(0.99)),
	)
}
