package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/pkg/api/v1/handlers"
)

// Job flag names
const (
	flagJobID          = "id"
	flagJobStatus      = "status"
	flagJobPage        = "page"
	flagCustomerID     = "customer-id"
	flagProfessionalID = "professional-id"
	flagJobTitle       = "title"
	flagJobDescription = "description"
	flagJobCategory    = "category"
	flagJobPriority    = "priority"
	flagPaymentMethod  = "payment-method"
	flagFinalPrice     = "final-price"
	flagActorRole      = "actor-role"
	flagActorID        = "actor-id"
	flagDisputeReason  = "reason"
	flagResolution     = "resolution"
	flagAdminID        = "admin-id"
)

// jobOutput represents the filtered output for a job
type jobOutput struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	CustomerID     uint   `json:"customer_id"`
	ProfessionalID *uint  `json:"professional_id,omitempty"`
	Created        string `json:"created_at"`
}

// jobListOutput represents the filtered output for a list of jobs
type jobListOutput struct {
	Jobs []jobOutput `json:"jobs"`
}

func toJobOutput(job models.Job) jobOutput {
	return jobOutput{
		ID:             job.ID,
		Title:          job.Title,
		Category:       job.Category,
		Status:         string(job.Status),
		PaymentStatus:  string(job.PaymentStatus),
		CustomerID:     job.CustomerID,
		ProfessionalID: job.ProfessionalID,
		Created:        job.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

func jobIDArg(cmd *cobra.Command) (string, error) {
	jobID, err := cmd.Flags().GetUint(flagJobID)
	if err != nil {
		return "", fmt.Errorf("error getting job ID flag: %w", err)
	}
	if jobID == 0 {
		return "", fmt.Errorf("job ID must be a positive number")
	}
	return fmt.Sprintf("%d", jobID), nil
}

func init() {
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(listJobsCmd)
	jobsCmd.AddCommand(createJobCmd)
	jobsCmd.AddCommand(acceptJobCmd)
	jobsCmd.AddCommand(startJobCmd)
	jobsCmd.AddCommand(completeJobCmd)
	jobsCmd.AddCommand(cancelJobCmd)
	jobsCmd.AddCommand(invoiceJobCmd)
	jobsCmd.AddCommand(cashReceivedCmd)
	jobsCmd.AddCommand(cashConfirmCmd)
	jobsCmd.AddCommand(disputeJobCmd)
	jobsCmd.AddCommand(resolveDisputeCmd)

	// Add flags for get
	getJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	_ = getJobCmd.MarkFlagRequired(flagJobID)

	// Add flags for list
	listJobsCmd.Flags().StringP(flagJobStatus, "t", "", "Filter jobs by status")
	listJobsCmd.Flags().Uint(flagCustomerID, 0, "Filter jobs by customer ID")
	listJobsCmd.Flags().Uint(flagProfessionalID, 0, "Filter jobs by professional ID")
	listJobsCmd.Flags().IntP(flagJobPage, "g", 1, "Page number for pagination")

	// Add flags for create
	createJobCmd.Flags().Uint(flagCustomerID, 0, "Customer ID posting the job")
	createJobCmd.Flags().String(flagJobTitle, "", "Job title")
	createJobCmd.Flags().String(flagJobDescription, "", "Job description")
	createJobCmd.Flags().String(flagJobCategory, "", "Service category")
	createJobCmd.Flags().String(flagJobPriority, "", "Job priority (low, medium, high, urgent)")
	createJobCmd.Flags().String(flagPaymentMethod, "", "Payment method (cash, card, online)")
	_ = createJobCmd.MarkFlagRequired(flagCustomerID)
	_ = createJobCmd.MarkFlagRequired(flagJobTitle)
	_ = createJobCmd.MarkFlagRequired(flagJobCategory)

	// Add flags for accept
	acceptJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	acceptJobCmd.Flags().Uint(flagProfessionalID, 0, "Professional accepting the job")
	_ = acceptJobCmd.MarkFlagRequired(flagJobID)
	_ = acceptJobCmd.MarkFlagRequired(flagProfessionalID)

	// Add flags for start
	startJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	startJobCmd.Flags().Uint(flagProfessionalID, 0, "Assigned professional")
	_ = startJobCmd.MarkFlagRequired(flagJobID)
	_ = startJobCmd.MarkFlagRequired(flagProfessionalID)

	// Add flags for complete
	completeJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	completeJobCmd.Flags().Uint(flagProfessionalID, 0, "Assigned professional")
	completeJobCmd.Flags().Float64(flagFinalPrice, 0, "Final price for the work")
	_ = completeJobCmd.MarkFlagRequired(flagJobID)
	_ = completeJobCmd.MarkFlagRequired(flagProfessionalID)

	// Add flags for cancel
	cancelJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	cancelJobCmd.Flags().String(flagActorRole, "", "Role cancelling the job (customer, professional, admin)")
	cancelJobCmd.Flags().Uint(flagActorID, 0, "ID of the cancelling account")
	_ = cancelJobCmd.MarkFlagRequired(flagJobID)
	_ = cancelJobCmd.MarkFlagRequired(flagActorRole)

	// Add flags for invoice
	invoiceJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	_ = invoiceJobCmd.MarkFlagRequired(flagJobID)

	// Add flags for cash-received
	cashReceivedCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	cashReceivedCmd.Flags().Uint(flagProfessionalID, 0, "Professional who received the cash")
	_ = cashReceivedCmd.MarkFlagRequired(flagJobID)
	_ = cashReceivedCmd.MarkFlagRequired(flagProfessionalID)

	// Add flags for cash-confirm
	cashConfirmCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	cashConfirmCmd.Flags().Uint(flagCustomerID, 0, "Customer confirming the payment")
	_ = cashConfirmCmd.MarkFlagRequired(flagJobID)
	_ = cashConfirmCmd.MarkFlagRequired(flagCustomerID)

	// Add flags for dispute
	disputeJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	disputeJobCmd.Flags().String(flagActorRole, "", "Role raising the dispute (customer, professional)")
	disputeJobCmd.Flags().Uint(flagActorID, 0, "ID of the disputing account")
	disputeJobCmd.Flags().String(flagDisputeReason, "", "Reason for the dispute")
	_ = disputeJobCmd.MarkFlagRequired(flagJobID)
	_ = disputeJobCmd.MarkFlagRequired(flagActorRole)
	_ = disputeJobCmd.MarkFlagRequired(flagDisputeReason)

	// Add flags for resolve
	resolveDisputeCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	resolveDisputeCmd.Flags().Uint(flagAdminID, 0, "Admin resolving the dispute")
	resolveDisputeCmd.Flags().String(flagResolution, "", "Resolution notes")
	_ = resolveDisputeCmd.MarkFlagRequired(flagJobID)
	_ = resolveDisputeCmd.MarkFlagRequired(flagResolution)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific job by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}

		job, err := apiClient.GetJob(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs with optional filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString(flagJobStatus)
		customerID, _ := cmd.Flags().GetUint(flagCustomerID)
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)
		page, _ := cmd.Flags().GetInt(flagJobPage)

		query := url.Values{}
		if status != "" {
			query.Set("status", status)
		}
		if customerID != 0 {
			query.Set("customer_id", fmt.Sprintf("%d", customerID))
		}
		if professionalID != 0 {
			query.Set("professional_id", fmt.Sprintf("%d", professionalID))
		}
		if page > 1 {
			query.Set("page", fmt.Sprintf("%d", page))
		}

		jobs, err := apiClient.GetJobs(context.Background(), query)
		if err != nil {
			return fmt.Errorf("error listing jobs: %w", err)
		}

		output := jobListOutput{Jobs: make([]jobOutput, len(jobs))}
		for i, job := range jobs {
			output.Jobs[i] = toJobOutput(job)
		}
		return printJSON(output)
	},
}

var createJobCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		customerID, _ := cmd.Flags().GetUint(flagCustomerID)
		title, _ := cmd.Flags().GetString(flagJobTitle)
		description, _ := cmd.Flags().GetString(flagJobDescription)
		category, _ := cmd.Flags().GetString(flagJobCategory)
		priority, _ := cmd.Flags().GetString(flagJobPriority)
		paymentMethod, _ := cmd.Flags().GetString(flagPaymentMethod)

		params := handlers.CreateJobParams{
			CustomerID:    customerID,
			Title:         title,
			Description:   description,
			Category:      category,
			Priority:      priority,
			PaymentMethod: paymentMethod,
		}

		job, err := apiClient.CreateJob(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error creating job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var acceptJobCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept a pending job as a professional",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)

		job, err := apiClient.AcceptJob(context.Background(), id, handlers.AcceptJobParams{
			ProfessionalID: professionalID,
		})
		if err != nil {
			return fmt.Errorf("error accepting job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var startJobCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an accepted job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)

		job, err := apiClient.StartJob(context.Background(), id, handlers.AcceptJobParams{
			ProfessionalID: professionalID,
		})
		if err != nil {
			return fmt.Errorf("error starting job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var completeJobCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete an in-progress job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)

		params := handlers.CompleteJobParams{ProfessionalID: professionalID}
		if cmd.Flags().Changed(flagFinalPrice) {
			finalPrice, _ := cmd.Flags().GetFloat64(flagFinalPrice)
			params.FinalPrice = &finalPrice
		}

		job, err := apiClient.CompleteJob(context.Background(), id, params)
		if err != nil {
			return fmt.Errorf("error completing job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var cancelJobCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		actorRole, _ := cmd.Flags().GetString(flagActorRole)
		actorID, _ := cmd.Flags().GetUint(flagActorID)

		job, err := apiClient.CancelJob(context.Background(), id, handlers.ActorParams{
			ActorID:   actorID,
			ActorRole: actorRole,
		})
		if err != nil {
			return fmt.Errorf("error cancelling job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var invoiceJobCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Generate or fetch the invoice for a completed job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}

		invoice, err := apiClient.GenerateInvoice(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error generating invoice: %w", err)
		}
		return printJSON(invoice)
	},
}

var cashReceivedCmd = &cobra.Command{
	Use:   "cash-received",
	Short: "Mark a cash payment as received by the professional",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		professionalID, _ := cmd.Flags().GetUint(flagProfessionalID)

		job, err := apiClient.MarkCashReceived(context.Background(), id, handlers.CashReceivedParams{
			ProfessionalID: professionalID,
		})
		if err != nil {
			return fmt.Errorf("error marking cash received: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var cashConfirmCmd = &cobra.Command{
	Use:   "cash-confirm",
	Short: "Confirm a cash payment as the customer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		customerID, _ := cmd.Flags().GetUint(flagCustomerID)

		job, err := apiClient.ConfirmCashPayment(context.Background(), id, handlers.CashConfirmParams{
			CustomerID: customerID,
		})
		if err != nil {
			return fmt.Errorf("error confirming cash payment: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var disputeJobCmd = &cobra.Command{
	Use:   "dispute",
	Short: "Raise a dispute on a cash payment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		actorRole, _ := cmd.Flags().GetString(flagActorRole)
		actorID, _ := cmd.Flags().GetUint(flagActorID)
		reason, _ := cmd.Flags().GetString(flagDisputeReason)

		params := handlers.CashDisputeParams{Reason: reason}
		params.ActorID = actorID
		params.ActorRole = actorRole

		job, err := apiClient.RaiseCashDispute(context.Background(), id, params)
		if err != nil {
			return fmt.Errorf("error raising dispute: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var resolveDisputeCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an open cash dispute as an admin",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := jobIDArg(cmd)
		if err != nil {
			return err
		}
		adminID, _ := cmd.Flags().GetUint(flagAdminID)
		resolution, _ := cmd.Flags().GetString(flagResolution)

		job, err := apiClient.ResolveCashDispute(context.Background(), id, handlers.CashResolveParams{
			AdminID:    adminID,
			Resolution: resolution,
		})
		if err != nil {
			return fmt.Errorf("error resolving dispute: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

// GetJobsCmd returns the jobs command
func GetJobsCmd() *cobra.Command {
	return jobsCmd
}
