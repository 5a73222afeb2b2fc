// Package analysis compares a dry recording with the wet output of a
// plugin. It optionally estimates and removes the plugin latency, reports
// wet levels and dry/wet correlation, and can produce the null-test
// difference signal.
//
// # Usage
//
//	a := analysis.NewAnalyzer(analysis.WithAutoAlign(true), analysis.WithNullTest(true))
//	res, err := a.Analyze(dry, wet)
//	if err != nil {
//		return err
//	}
//	if res.Report.Failed() {
//		// non-finite samples in the wet or delta signal
//	}
package analysis
