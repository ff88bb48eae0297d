package runstore

import (
	"fmt"
	"time"

	"github.com/formlens/formlens/schema"
)

// PrintRunStoreStatus prints run store status information.
func PrintRunStoreStatus(status schema.RunStoreStatus) {
	fmt.Printf("Run Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", formatUnix(status.LastRunTime))
		fmt.Printf("Oldest Run: %s\n", formatUnix(status.OldestRunTime))
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}

func formatUnix(sec int64) string {
	return time.Unix(sec, 0).Format("2006-01-02 15:04:05")
}
