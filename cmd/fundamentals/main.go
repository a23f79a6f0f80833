// Command fundamentals runs the A-share fundamentals ETL and recomputation
// pipeline: it imports quarterly financial statements into a declare-date
// timeline, then recomputes daily valuation ratios against that timeline.
package main

func main() {
	Execute()
}
