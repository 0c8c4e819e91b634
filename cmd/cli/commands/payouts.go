package commands

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/pkg/api/v1/handlers"
)

// Payout flag names
const (
	flagPayoutID     = "id"
	flagPayoutAmount = "amount"
	flagPayoutFee    = "fee"
	flagPayoutStatus = "status"
	flagPayoutPage   = "page"
)

// payoutOutput represents the filtered output for a payout
type payoutOutput struct {
	ID             uint    `json:"id"`
	ProfessionalID uint    `json:"professional_id"`
	Amount         float64 `json:"amount"`
	ProcessingFee  float64 `json:"processing_fee"`
	NetAmount      float64 `json:"net_amount"`
	Status         string  `json:"status"`
	Reference      string  `json:"reference"`
	Created        string  `json:"created_at"`
}

// payoutListOutput represents the filtered output for a list of payouts
type payoutListOutput struct {
	Payouts []payoutOutput `json:"payouts"`
}

func toPayoutOutput(payout models.Payout) payoutOutput {
	return payoutOutput{
		ID:             payout.ID,
		ProfessionalID: payout.ProfessionalID,
		Amount:         payout.Amount,
		ProcessingFee:  payout.ProcessingFee,
		NetAmount:      payout.NetAmount,
		Status:         string(payout.Status),
		Reference:      payout.Reference,
		Created:        payout.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func init() {
	payoutsCmd.AddCommand(getPayoutCmd)
	payoutsCmd.AddCommand(listPayoutsCmd)
	payoutsCmd.AddCommand(createPayoutCmd)
	payoutsCmd.AddCommand(updatePayoutStatusCmd)

	// Add flags for get
	getPayoutCmd.Flags().UintP(flagPayoutID, "i", 0, "Payout ID")
	_ = getPayoutCmd.MarkFlagRequired(flagPayoutID)

	// Add flags for list
	listPayoutsCmd.Flags().Uint(flagProfessionalID, 0, "Professional ID to list payouts for")
	listPayoutsCmd.Flags().IntP(flagPayoutPage, "g", 1, "Page number for pagination")
	_ = listPayoutsCmd.MarkFlagRequired(flagProfessionalID)

	// Add flags for create
	createPayoutCmd.Flags().Uint(flagProfessionalID, 0, "Professional to pay out")
	createPayoutCmd.Flags().Float64(flagPayoutAmount, 0, "Gross payout amount")
	createPayoutCmd.Flags().Float64(flagPayoutFee, 0, "Processing fee deducted from the amount")
	_ = createPayoutCmd.MarkFlagRequired(flagProfessionalID)
	_ = createPayoutCmd.MarkFlagRequired(flagPayoutAmount)

	// Add flags for update-status
	updatePayoutStatusCmd.Flags().UintP(flagPayoutID, "i", 0, "Payout ID")
	updatePayoutStatusCmd.Flags().String(flagPayoutStatus, "", "New status (pending, processing, completed, failed)")
	_ = updatePayoutStatusCmd.MarkFlagRequired(flagPayoutID)
	_ = updatePayoutStatusCmd.MarkFlagRequired(flagPayoutStatus)
}

var payoutsCmd = &cobra.Command{
	Use:   "payouts",
	Short: "Manage professional payouts",
}

var getPayoutCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific payout by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payoutID, err := cmd.Flags().GetUint(flagPayoutID)
		if err != nil {
			return fmt.Errorf("error getting payout ID flag: %w", err)
		}
		if payoutID == 0 {
			return fmt.Errorf("payout ID must be a positive number")
		}

		payout, err := apiClient.GetPayout(context.Background(), fmt.Sprintf("%d", payoutID))
		if err != nil {
			return fmt.Errorf("error getting payout: %w", err)
		}
		return printJSON(toPayoutOutput(payout))
	},
}

var listPayoutsCmd = &cobra.Command{
	Use:   "list",
	Short: "List payouts for a professional",
	RunE: func(cmd *cobra.Command, _ []string) error {
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)
		page, _ := cmd.Flags().GetInt(flagPayoutPage)

		query := url.Values{}
		query.Set("professional_id", fmt.Sprintf("%d", professionalID))
		if page > 1 {
			query.Set("page", fmt.Sprintf("%d", page))
		}

		payouts, err := apiClient.GetPayouts(context.Background(), query)
		if err != nil {
			return fmt.Errorf("error listing payouts: %w", err)
		}

		output := payoutListOutput{Payouts: make([]payoutOutput, len(payouts))}
		for i, payout := range payouts {
			output.Payouts[i] = toPayoutOutput(payout)
		}
		return printJSON(output)
	},
}

var createPayoutCmd = &cobra.Command{
	Use:   "create",
	Short: "Queue a payout of provider earnings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)
		amount, _ := cmd.Flags().GetFloat64(flagPayoutAmount)
		fee, _ := cmd.Flags().GetFloat64(flagPayoutFee)

		payout, err := apiClient.CreatePayout(context.Background(), handlers.CreatePayoutParams{
			ProfessionalID: professionalID,
			Amount:         amount,
			ProcessingFee:  fee,
		})
		if err != nil {
			return fmt.Errorf("error creating payout: %w", err)
		}
		return printJSON(toPayoutOutput(payout))
	},
}

var updatePayoutStatusCmd = &cobra.Command{
	Use:   "update-status",
	Short: "Move a payout through its processing states",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payoutID, _ := cmd.Flags().GetUint(flagPayoutID)
		status, _ := cmd.Flags().GetString(flagPayoutStatus)

		payout, err := apiClient.UpdatePayoutStatus(context.Background(), fmt.Sprintf("%d", payoutID), handlers.UpdatePayoutStatusParams{
			Status: status,
		})
		if err != nil {
			return fmt.Errorf("error updating payout status: %w", err)
		}
		return printJSON(toPayoutOutput(payout))
	},
}

// GetPayoutsCmd returns the payouts command
func GetPayoutsCmd() *cobra.Command {
	return payoutsCmd
}
