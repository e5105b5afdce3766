// Command balancehunter generates random key pairs, scores them against a
// set of known funded addresses and looks up the balance of every
// candidate. It demonstrates why guessing a funded key does not work.
package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amr-9/BalanceHunter/internal/config"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

const version = "1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	timeoutSecs := -1

	root := &cobra.Command{
		Use:   "balancehunter [address...]",
		Short: "Guess private keys of funded addresses and watch it fail",
		Long: `balancehunter generates random secp256k1 key pairs, reports how close each
public address comes to a set of known funded addresses and checks the
balance of every generated address through a rate limited worker pool.

Targets come from --addresses (YAML list, text file or SQLite wallets
table) unless addresses are given as arguments.

Examples:
  balancehunter --max-guesses 100000
  balancehunter --network bitcoin --rpc https://blockstream.info/api --rate 5
  balancehunter --strategy trie 0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Targets = args
			if timeoutSecs > 0 {
				cfg.Timeout = time.Duration(timeoutSecs) * time.Second
			} else {
				cfg.Timeout = -1
			}
			return runHunt(cmd, cfg)
		},
	}

	f := root.Flags()
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second when showing guesses, non-positive to show every guess")
	f.IntVar(&timeoutSecs, "timeout", timeoutSecs, "stop after this many seconds when positive")
	f.Uint64Var(&cfg.MaxGuesses, "max-guesses", cfg.MaxGuesses, "stop after this many attempts when positive")
	f.StringVar(&cfg.Addresses, "addresses", cfg.Addresses, "file with target addresses (.yaml, .txt or .db)")
	f.IntVar(&cfg.Port, "port", cfg.Port, "monitoring port for runtime metrics")
	f.BoolVar(&cfg.NoPort, "no-port", cfg.NoPort, "disable the monitoring port")
	f.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "target lookup strategy: "+strings.Join(targets.Strategies(), ", "))
	f.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "skip the animation")
	f.StringVarP(&cfg.Network, "network", "n", cfg.Network, "network: ethereum, bitcoin or tron")
	f.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "number of balance lookup workers")
	f.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "how long an idle worker waits for work before rechecking")
	f.DurationVar(&cfg.StallTimeout, "stall-timeout", cfg.StallTimeout, "fail the drain when no lookup completes for this long, 0 waits forever")
	f.StringVar(&cfg.RPC, "rpc", cfg.RPC, "balance endpoint (JSON-RPC for ethereum, Esplora for bitcoin, TronGrid for tron); empty skips lookups")
	f.IntVar(&cfg.Rate, "rate", cfg.Rate, "max balance lookups per second, 0 is unlimited")
	f.DurationVar(&cfg.LookupTimeout, "lookup-timeout", cfg.LookupTimeout, "deadline of a single balance lookup")
	f.StringVar(&cfg.FoundFile, "found-file", cfg.FoundFile, "append funded keys to this file, empty to disable")
	f.StringVar(&cfg.FoundDB, "found-db", cfg.FoundDB, "also store funded keys in this SQLite database")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	f.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "log as JSON")

	root.AddCommand(newDeriveCommand())
	return root
}
