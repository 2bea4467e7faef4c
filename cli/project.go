package cli

import (
	"github.com/spf13/cobra"

	"b3-dashboard/domain"
	"b3-dashboard/repository"
	"b3-dashboard/service"
)

func newProjectCmd() *cobra.Command {
	var req domain.InvestmentRequest

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project an investment with monthly contributions",
		Example: `  b3dash project --principal 10000 --contribution 500 --rate 7 --years 10
  b3dash project --principal 5000 --rate 12 --years 5 --frequency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewInvestmentService(repository.NewInvestmentRepositoryMemory(1), nil)
			result, err := svc.Calculate(req)
			if err != nil {
				return err
			}
			return renderProjection(cmd.OutOrStdout(), req, result)
		},
	}

	cmd.Flags().Float64Var(&req.Principal, "principal", 10000, "Initial investment (R$)")
	cmd.Flags().Float64Var(&req.MonthlyContribution, "contribution", 500, "Monthly contribution (R$)")
	cmd.Flags().Float64Var(&req.AnnualRatePercent, "rate", 7, "Annual interest rate (%)")
	cmd.Flags().IntVar(&req.Years, "years", 10, "Investment period (years)")
	cmd.Flags().IntVar(&req.CompoundingFrequency, "frequency", domain.DefaultCompoundingFrequency, "Compounding periods per year")

	return cmd
}
