package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/model"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage task templates",
	GroupID: "schedule",
}

func taskFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "task title (required)")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("type", "", "task type")
	cmd.Flags().String("work", "", "work type")
	cmd.Flags().Int("minutes", 30, "estimated minutes")
	cmd.Flags().Bool("public", false, "visible to customers")
	cmd.Flags().String("status", string(model.TaskActive), "ACTIVE or INACTIVE")
}

func taskInput(cmd *cobra.Command) *model.TaskTemplateInput {
	in := &model.TaskTemplateInput{}
	in.Title, _ = cmd.Flags().GetString("title")
	in.Description, _ = cmd.Flags().GetString("description")
	in.TaskType, _ = cmd.Flags().GetString("type")
	in.WorkType, _ = cmd.Flags().GetString("work")
	in.EstimatedMinutes, _ = cmd.Flags().GetInt("minutes")
	in.IsPublic, _ = cmd.Flags().GetBool("public")
	status, _ := cmd.Flags().GetString("status")
	in.Status = model.TaskStatus(strings.ToUpper(status))
	return in
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		t, err := cafeClient.CreateTaskTemplate(ctx, taskInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceTaskTemplate, t.ID, events.ActionCreated)
		return reportMutation(events.ResourceTaskTemplate, events.ActionCreated, t.ID, t)
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a task template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		t, err := cafeClient.UpdateTaskTemplate(ctx, model.ID(args[0]), taskInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceTaskTemplate, t.ID, events.ActionUpdated)
		return reportMutation(events.ResourceTaskTemplate, events.ActionUpdated, t.ID, t)
	},
}

var slotCmd = &cobra.Command{
	Use:     "slot",
	Short:   "Manage weekly task slots",
	GroupID: "schedule",
}

func slotFlags(cmd *cobra.Command) {
	cmd.Flags().String("task", "", "task template id (required)")
	cmd.Flags().String("day", "", "weekday, e.g. MONDAY (required)")
	cmd.Flags().String("start", "", "start time HH:MM (required)")
	cmd.Flags().String("end", "", "end time HH:MM (required)")
	cmd.Flags().String("area", "", "cafe area")
	cmd.Flags().Int("capacity", 1, "maximum staff")
	cmd.Flags().String("status", string(model.TaskActive), "ACTIVE or INACTIVE")
}

func slotInput(cmd *cobra.Command) *model.SlotInput {
	in := &model.SlotInput{}
	task, _ := cmd.Flags().GetString("task")
	in.TaskID = model.ID(task)
	day, _ := cmd.Flags().GetString("day")
	in.DayOfWeek = model.Weekday(strings.ToUpper(day))
	in.StartTime, _ = cmd.Flags().GetString("start")
	in.EndTime, _ = cmd.Flags().GetString("end")
	in.Area, _ = cmd.Flags().GetString("area")
	in.MaxCapacity, _ = cmd.Flags().GetInt("capacity")
	status, _ := cmd.Flags().GetString("status")
	in.Status = model.TaskStatus(strings.ToUpper(status))
	return in
}

var slotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		s, err := cafeClient.CreateSlot(ctx, slotInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceSlot, s.ID, events.ActionCreated)
		return reportMutation(events.ResourceSlot, events.ActionCreated, s.ID, s)
	},
}

var slotUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		s, err := cafeClient.UpdateSlot(ctx, model.ID(args[0]), slotInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceSlot, s.ID, events.ActionUpdated)
		return reportMutation(events.ResourceSlot, events.ActionUpdated, s.ID, s)
	},
}

func init() {
	taskFlags(taskCreateCmd)
	taskFlags(taskUpdateCmd)
	taskCmd.AddCommand(taskCreateCmd, taskUpdateCmd,
		deleteCommand(events.ResourceTaskTemplate, func(ctx context.Context, id model.ID) error {
			return cafeClient.DeleteTaskTemplate(ctx, id)
		}))

	slotFlags(slotCreateCmd)
	slotFlags(slotUpdateCmd)
	slotCmd.AddCommand(slotCreateCmd, slotUpdateCmd,
		deleteCommand(events.ResourceSlot, func(ctx context.Context, id model.ID) error {
			return cafeClient.DeleteSlot(ctx, id)
		}))
}
