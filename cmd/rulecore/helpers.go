package main

import (
	"fmt"

	"github.com/hexfield/rulecore/internal/domain/services"
)

// printWarnings prints the recoverable problems of a load pass.
func printWarnings(report *services.LoadReport) {
	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
