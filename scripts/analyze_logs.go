package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors     int
	LoginSuccess    int
	LoginFailures   int
	RecordsCreated  int
	RecordsDeleted  int
	AccrualRuns     int
	AccrualFailures int
	EmailFailures   int
	CustomerGrants  map[string]int
	ErrorPatterns   map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		CustomerGrants: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Invalid password for admin") || strings.Contains(line, "Admin not found") {
			stats.LoginFailures++
		}
		if strings.Contains(line, "Event handler failed") {
			stats.AccrualFailures++
		}
		if strings.Contains(line, "Failed to send affiliate grant email") {
			stats.EmailFailures++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Admin login successful") {
			stats.LoginSuccess++
		}
		if strings.Contains(line, "Successfully created affiliate discount") {
			stats.RecordsCreated++
			extractCustomerGrant(line, stats)
		}
		if strings.Contains(line, "Successfully deleted affiliate discount") {
			stats.RecordsDeleted++
		}
		if strings.Contains(line, "Accrued affiliate earnings for order") {
			stats.AccrualRuns++
		}
	}
}

func extractCustomerGrant(line string, stats *LogStats) {
	customerRegex := regexp.MustCompile(`for customer (\S+)`)
	if match := customerRegex.FindStringSubmatch(line); len(match) == 2 {
		stats.CustomerGrants[match[1]]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Strip the logger prefix and the variable tail so similar errors group
	// together.
	parts := strings.SplitN(line, "ERROR: ", 2)
	if len(parts) != 2 {
		return
	}
	message := parts[1]
	if idx := strings.Index(message, ":"); idx > 0 {
		message = message[:idx]
	}
	stats.ErrorPatterns[message]++
}

func printReport(stats *LogStats) {
	fmt.Println("=== Affiliate Ledger Log Report ===")
	fmt.Printf("Total errors:          %d\n", stats.TotalErrors)
	fmt.Printf("Admin logins:          %d (failures: %d)\n", stats.LoginSuccess, stats.LoginFailures)
	fmt.Printf("Records created:       %d\n", stats.RecordsCreated)
	fmt.Printf("Records deleted:       %d\n", stats.RecordsDeleted)
	fmt.Printf("Accrual runs:          %d (failures: %d)\n", stats.AccrualRuns, stats.AccrualFailures)
	fmt.Printf("Email failures:        %d\n", stats.EmailFailures)

	if len(stats.CustomerGrants) > 0 {
		fmt.Println("\nGrants per customer:")
		customers := make([]string, 0, len(stats.CustomerGrants))
		for customer := range stats.CustomerGrants {
			customers = append(customers, customer)
		}
		sort.Strings(customers)
		for _, customer := range customers {
			fmt.Printf("  %-30s %d\n", customer, stats.CustomerGrants[customer])
		}
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nError patterns:")
		patterns := make([]string, 0, len(stats.ErrorPatterns))
		for pattern := range stats.ErrorPatterns {
			patterns = append(patterns, pattern)
		}
		sort.Strings(patterns)
		for _, pattern := range patterns {
			fmt.Printf("  %-50s %d\n", pattern, stats.ErrorPatterns[pattern])
		}
	}
}
