// Command harness renders audio through effect plugins and analyses the
// result against the dry input.
//
// Usage:
//
//	harness dump-params --plugin <path>
//	harness render --plugin <path> --in <dry.wav> --outdir <dir> --sr <hz> --bs <samples> --ch <channels> --case <case.json>
//	harness analyze --dry <dry.wav> --wet <wet.wav> --outdir <dir> [--auto-align] [--null]
//	harness gen-signals --outdir <dir>
//
// Examples:
//
//	harness gen-signals --outdir out
//	harness render --plugin builtin:delay --in out/impulse.wav --outdir out --sr 48000 --bs 512 --ch 2 --case case.json
//	harness analyze --dry out/impulse.wav --wet out/wet.wav --outdir out --auto-align --null
//
// Exit status is 0 on success, 2 when an output holds NaN or Inf samples
// and 1 for every other failure.
package main

import (
	"os"

	"github.com/cwbudde/algo-harness/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
