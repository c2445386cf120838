package main

import (
	"os"

	"jmoreno/gastos-csv/cmd/classify"
	"jmoreno/gastos-csv/cmd/dedupe"
	"jmoreno/gastos-csv/cmd/enrich"
	"jmoreno/gastos-csv/cmd/export"
	"jmoreno/gastos-csv/cmd/importcsv"
	"jmoreno/gastos-csv/cmd/report"
	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/cmd/run"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(dedupe.Cmd)
	root.Cmd.AddCommand(enrich.Cmd)
	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
