package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"maestro/app"
	"maestro/internal/config"
)

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "maestro",
		Short: "Load loan workbook exports into the master spreadsheet",
	}
	rootCmd.AddCommand(
		newLoadCmd(),
		newMapCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLoadCmd() *cobra.Command {
	var masterPath string
	var purchaseDate string
	var mappingPath string
	var noReport bool

	cmd := &cobra.Command{
		Use:   "load <source.xlsx>",
		Short: "Merge a source workbook into the master, deduplicating by Rut + emission date",
		Long: `Read the Valo sheet (and the Base sheet when present) of a source
workbook, map its columns onto the master layout and append the new rows
to the master workbook, keeping the first occurrence of each
(Rut, Fecha de emisión) pair.

The purchase date applies to every new row. When --purchase-date is not
given it is asked for on the console; accepted formats are 2024-01-15
and 15/01/2024. An empty answer keeps whatever the source maps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath := strings.TrimSpace(args[0])

			cfg, err := config.Load(mappingPath)
			if err != nil {
				return err
			}
			if noReport {
				cfg.ShowReport = false
			}
			if masterPath == "" {
				masterPath = cfg.MasterPath
			}
			if masterPath == "" {
				masterPath = filepath.Join(filepath.Dir(sourcePath), "maestro.xlsx")
			}
			if !cmd.Flags().Changed("purchase-date") {
				purchaseDate = promptPurchaseDate()
			}

			res, err := app.NewLoadService().Run(app.LoadRequest{
				SourcePath:   sourcePath,
				MasterPath:   masterPath,
				PurchaseDate: purchaseDate,
				Config:       cfg,
			})
			if err != nil {
				return err
			}
			if cfg.ShowReport {
				res.Report.Render(os.Stdout)
			}
			fmt.Printf("Master updated: %s (%d rows appended)\n", masterPath, res.Appended)
			return nil
		},
	}

	cmd.Flags().StringVarP(&masterPath, "master", "m", "", "master workbook path (default: maestro.xlsx next to the source)")
	cmd.Flags().StringVarP(&purchaseDate, "purchase-date", "d", "", "purchase date for the new rows (2006-01-02 or 02/01/2006)")
	cmd.Flags().StringVarP(&mappingPath, "config", "c", "", "YAML mapping configuration (overrides, aliases)")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip the column mapping report")
	return cmd
}

func newMapCmd() *cobra.Command {
	var mappingPath string

	cmd := &cobra.Command{
		Use:   "map <source.xlsx>",
		Short: "Show how a source workbook would map, without touching the master",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(mappingPath)
			if err != nil {
				return err
			}
			rep, err := app.NewLoadService().Plan(app.LoadRequest{
				SourcePath: strings.TrimSpace(args[0]),
				Config:     cfg,
			})
			if err != nil {
				return err
			}
			rep.Render(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mappingPath, "config", "c", "", "YAML mapping configuration (overrides, aliases)")
	return cmd
}

func promptPurchaseDate() string {
	fmt.Print("Purchase date (e.g. 2024-01-15 or 15/01/2024, empty to skip): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
