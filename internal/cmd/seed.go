package cmd

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the reap CLI.
// It generates a large number of test files with randomized directory
// structure, useful for exercising and benchmarking the remover.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate test files with randomized directory structure",
		Long: `Generate a large number of test files for exercising reap.

Creates files in a YYYY/MM/DD/HH/mm/SS directory structure with randomized
placement. Files are distributed across the hierarchy with most files at the
deepest level (SS). Each file contains a single UUID line.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10000, "Number of files to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount int, verbose bool) {
	if verbose {
		fmt.Printf("Generating %d test files in %s\n", fileCount, outputPath)
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Generate pool of 50 UUIDs for file contents
	uuidPool := make([]string, 50)
	for i := 0; i < 50; i++ {
		uuidPool[i] = uuid.New().String()
	}

	filesCreated := 0
	dirFileCounts := make(map[string]int)

	// Start from a base time and vary it
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for filesCreated < fileCount {
		// Generate random time offset (within a year)
		dayOffset, _ := rand.Int(rand.Reader, big.NewInt(365))
		hourOffset, _ := rand.Int(rand.Reader, big.NewInt(24))
		minuteOffset, _ := rand.Int(rand.Reader, big.NewInt(60))
		secondOffset, _ := rand.Int(rand.Reader, big.NewInt(60))

		fileTime := baseTime.AddDate(0, 0, int(dayOffset.Int64())).
			Add(time.Duration(hourOffset.Int64()) * time.Hour).
			Add(time.Duration(minuteOffset.Int64()) * time.Minute).
			Add(time.Duration(secondOffset.Int64()) * time.Second)

		// Determine directory level (most files at deepest level)
		levelRand, _ := rand.Int(rand.Reader, big.NewInt(100))
		parts := []string{
			fmt.Sprintf("%04d", fileTime.Year()),
			fmt.Sprintf("%02d", fileTime.Month()),
			fmt.Sprintf("%02d", fileTime.Day()),
			fmt.Sprintf("%02d", fileTime.Hour()),
			fmt.Sprintf("%02d", fileTime.Minute()),
			fmt.Sprintf("%02d", fileTime.Second()),
		}
		var depth int
		switch {
		case levelRand.Int64() < 5: // 5% at year level
			depth = 1
		case levelRand.Int64() < 10: // 5% at month level
			depth = 2
		case levelRand.Int64() < 15: // 5% at day level
			depth = 3
		case levelRand.Int64() < 25: // 10% at hour level
			depth = 4
		case levelRand.Int64() < 40: // 15% at minute level
			depth = 5
		default: // 60% at second level
			depth = 6
		}
		dirPath := filepath.Join(append([]string{outputPath}, parts[:depth]...)...)

		// Keep directories from growing unreasonably large
		if dirFileCounts[dirPath] >= 1000 {
			continue
		}

		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", dirPath, err)
			continue
		}

		// Generate random filename (lowercase hex)
		filenameNum, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
		extRand, _ := rand.Int(rand.Reader, big.NewInt(2))
		ext := ".json"
		if extRand.Int64() == 1 {
			ext = ".txt"
		}
		filePath := filepath.Join(dirPath, fmt.Sprintf("%08x%s", filenameNum.Int64(), ext))

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		uuidIndex, _ := rand.Int(rand.Reader, big.NewInt(50))
		content := uuidPool[uuidIndex.Int64()] + "\n"

		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		dirFileCounts[dirPath]++
		filesCreated++

		if verbose && filesCreated%1000 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files\n", filesCreated)
		fmt.Printf("Files distributed across %d directories\n", len(dirFileCounts))
	}
}
