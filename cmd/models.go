package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ollamadash/services"
)

func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models [prefix]",
		Aliases: []string{"ls"},
		Short:   "List upstream models with dashboard statistics",
		Args:    cobra.MaximumNArgs(1),
		RunE:    modelsHandler,
	}

	return cmd
}

func modelsHandler(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.ValidateUpstream(); err != nil {
		return err
	}

	client, err := services.NewInferenceClient(cfg)
	if err != nil {
		return err
	}

	list, err := client.ListModels(cmd.Context())
	if err != nil {
		return err
	}

	var data [][]string
	for _, m := range list {
		if len(args) > 0 && !strings.HasPrefix(strings.ToLower(m.Name), strings.ToLower(args[0])) {
			continue
		}

		family, params, quant := "", "", ""
		if m.Details != nil {
			family, params, quant = m.Details.Family, m.Details.ParameterSize, m.Details.QuantizationLevel
		}
		data = append(data, []string{m.Name, services.HumanBytes(m.Size), family, params, quant})
	}

	out := cmd.OutOrStdout()

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"NAME", "SIZE", "FAMILY", "PARAMETERS", "QUANTIZATION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	stats := services.ComputeStats(list)
	fmt.Fprintf(out, "\n%d models, %s total, %d active\n", stats.TotalModels, stats.TotalSize, stats.ActiveModels)

	return nil
}
