package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/model"
)

var leaveCmd = &cobra.Command{
	Use:     "leave",
	Short:   "Request and review leave",
	GroupID: "leave",
}

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit a leave request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := &model.LeaveRequestInput{}
		typ, _ := cmd.Flags().GetString("type")
		in.LeaveType = model.LeaveType(strings.ToUpper(typ))
		in.StartDate, _ = cmd.Flags().GetString("from")
		in.EndDate, _ = cmd.Flags().GetString("to")
		in.Reason, _ = cmd.Flags().GetString("reason")

		ctx := mutationContext()
		l, err := cafeClient.CreateLeaveRequest(ctx, in)
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceLeaveRequest, l.ID, events.ActionCreated)
		return reportMutation(events.ResourceLeaveRequest, events.ActionCreated, l.ID, l)
	},
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		ctx := mutationContext()
		l, err := cafeClient.ApproveLeaveRequest(ctx, model.ID(args[0]), notes)
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceLeaveRequest, l.ID, events.ActionApproved)
		return reportMutation(events.ResourceLeaveRequest, events.ActionApproved, l.ID, l)
	},
}

var leaveRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending leave request (notes required)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		ctx := mutationContext()
		l, err := cafeClient.RejectLeaveRequest(ctx, model.ID(args[0]), notes)
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceLeaveRequest, l.ID, events.ActionRejected)
		return reportMutation(events.ResourceLeaveRequest, events.ActionRejected, l.ID, l)
	},
}

var leaveCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel one of your pending leave requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		l, err := cafeClient.CancelLeaveRequest(ctx, model.ID(args[0]))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceLeaveRequest, l.ID, events.ActionCancelled)
		return reportMutation(events.ResourceLeaveRequest, events.ActionCancelled, l.ID, l)
	},
}

func init() {
	leaveRequestCmd.Flags().String("type", string(model.LeaveAnnual), "ANNUAL, SICK, PERSONAL, EMERGENCY or UNPAID")
	leaveRequestCmd.Flags().String("from", "", "first day YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().String("to", "", "last day YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().String("reason", "", "reason (required)")

	leaveApproveCmd.Flags().String("notes", "", "reviewer notes")
	leaveRejectCmd.Flags().String("notes", "", "reason for rejecting (required)")

	leaveCmd.AddCommand(leaveRequestCmd, leaveApproveCmd, leaveRejectCmd, leaveCancelCmd)
}
