package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/ui"
)

// Vaccine types

var vaccineCmd = &cobra.Command{
	Use:     "vaccine",
	Short:   "Manage vaccine types",
	GroupID: "catalog",
}

func vaccineFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "vaccine name (required)")
	cmd.Flags().String("species", "", "species id (required)")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().Int("interval", 12, "months between doses")
	cmd.Flags().Bool("required", false, "mark the vaccine as mandatory")
}

func vaccineInput(cmd *cobra.Command) *model.VaccineTypeInput {
	in := &model.VaccineTypeInput{}
	in.Name, _ = cmd.Flags().GetString("name")
	species, _ := cmd.Flags().GetString("species")
	in.SpeciesID = model.ID(species)
	in.Description, _ = cmd.Flags().GetString("description")
	in.IntervalMonths, _ = cmd.Flags().GetInt("interval")
	in.IsRequired, _ = cmd.Flags().GetBool("required")
	return in
}

var vaccineCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a vaccine type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		v, err := cafeClient.CreateVaccineType(ctx, vaccineInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceVaccineType, v.ID, events.ActionCreated)
		return reportMutation(events.ResourceVaccineType, events.ActionCreated, v.ID, v)
	},
}

var vaccineUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a vaccine type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		v, err := cafeClient.UpdateVaccineType(ctx, model.ID(args[0]), vaccineInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceVaccineType, v.ID, events.ActionUpdated)
		return reportMutation(events.ResourceVaccineType, events.ActionUpdated, v.ID, v)
	},
}

// Breeds

var breedCmd = &cobra.Command{
	Use:     "breed",
	Short:   "Manage breeds",
	GroupID: "catalog",
}

func breedFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "breed name (required)")
	cmd.Flags().String("species", "", "species id (required)")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().Bool("active", true, "breed is selectable")
}

func breedInput(cmd *cobra.Command) *model.BreedInput {
	in := &model.BreedInput{}
	in.Name, _ = cmd.Flags().GetString("name")
	species, _ := cmd.Flags().GetString("species")
	in.SpeciesID = model.ID(species)
	in.Description, _ = cmd.Flags().GetString("description")
	in.IsActive, _ = cmd.Flags().GetBool("active")
	return in
}

var breedCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a breed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		b, err := cafeClient.CreateBreed(ctx, breedInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceBreed, b.ID, events.ActionCreated)
		return reportMutation(events.ResourceBreed, events.ActionCreated, b.ID, b)
	},
}

var breedUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a breed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		b, err := cafeClient.UpdateBreed(ctx, model.ID(args[0]), breedInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourceBreed, b.ID, events.ActionUpdated)
		return reportMutation(events.ResourceBreed, events.ActionUpdated, b.ID, b)
	},
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List species (ids for --species)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		species, err := cafeClient.ListSpecies(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(species)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, s := range species {
			fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Label())
		}
		return w.Flush()
	},
}

// Pets

var petCmd = &cobra.Command{
	Use:     "pet",
	Short:   "Manage pets",
	GroupID: "catalog",
}

func petFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "pet name (required)")
	cmd.Flags().String("species", "", "species id (required)")
	cmd.Flags().String("breed", "", "breed id")
	cmd.Flags().Int("age", 0, "age in years")
	cmd.Flags().String("gender", "", "MALE or FEMALE")
	cmd.Flags().String("color", "", "coat color")
	cmd.Flags().Float64("weight", 0, "weight in kg")
	cmd.Flags().String("health", string(model.HealthHealthy), "HEALTHY, SICK, RECOVERING or QUARANTINE")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().String("arrived", "", "arrival date (YYYY-MM-DD)")
}

func petInput(cmd *cobra.Command) *model.PetInput {
	in := &model.PetInput{}
	in.Name, _ = cmd.Flags().GetString("name")
	species, _ := cmd.Flags().GetString("species")
	in.SpeciesID = model.ID(species)
	breed, _ := cmd.Flags().GetString("breed")
	in.BreedID = model.ID(breed)
	in.Age, _ = cmd.Flags().GetInt("age")
	gender, _ := cmd.Flags().GetString("gender")
	in.Gender = model.Gender(gender)
	in.Color, _ = cmd.Flags().GetString("color")
	in.Weight, _ = cmd.Flags().GetFloat64("weight")
	health, _ := cmd.Flags().GetString("health")
	in.HealthStatus = model.HealthStatus(health)
	in.Notes, _ = cmd.Flags().GetString("notes")
	in.ArrivalDate, _ = cmd.Flags().GetString("arrived")
	return in
}

var petShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a pet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := cafeClient.GetPet(cmd.Context(), model.ID(args[0]))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", p.ID)
		fmt.Fprintf(w, "Name:\t%s\n", p.Name)
		fmt.Fprintf(w, "Species:\t%s\n", p.Species.Label())
		if p.Breed != nil {
			fmt.Fprintf(w, "Breed:\t%s\n", p.Breed.Name)
		}
		fmt.Fprintf(w, "Age:\t%d\n", p.Age)
		if p.Gender != "" {
			fmt.Fprintf(w, "Gender:\t%s\n", p.Gender)
		}
		if p.Color != "" {
			fmt.Fprintf(w, "Color:\t%s\n", p.Color)
		}
		if p.Weight > 0 {
			fmt.Fprintf(w, "Weight:\t%.1f kg\n", p.Weight)
		}
		fmt.Fprintf(w, "Health:\t%s\n", ui.RenderStatus(string(p.HealthStatus)))
		if p.ArrivalDate != "" {
			fmt.Fprintf(w, "Arrived:\t%s\n", p.ArrivalDate)
		}
		if p.Notes != "" {
			fmt.Fprintf(w, "Notes:\t%s\n", p.Notes)
		}
		return w.Flush()
	},
}

var petCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a pet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		p, err := cafeClient.CreatePet(ctx, petInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourcePet, p.ID, events.ActionCreated)
		return reportMutation(events.ResourcePet, events.ActionCreated, p.ID, p)
	},
}

var petUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a pet's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := mutationContext()
		p, err := cafeClient.UpdatePet(ctx, model.ID(args[0]), petInput(cmd))
		if err != nil {
			return err
		}
		announce(ctx, events.ResourcePet, p.ID, events.ActionUpdated)
		return reportMutation(events.ResourcePet, events.ActionUpdated, p.ID, p)
	},
}

func init() {
	vaccineFlags(vaccineCreateCmd)
	vaccineFlags(vaccineUpdateCmd)
	vaccineCmd.AddCommand(vaccineCreateCmd, vaccineUpdateCmd,
		deleteCommand(events.ResourceVaccineType, func(ctx context.Context, id model.ID) error {
			return cafeClient.DeleteVaccineType(ctx, id)
		}))

	breedFlags(breedCreateCmd)
	breedFlags(breedUpdateCmd)
	breedCmd.AddCommand(breedCreateCmd, breedUpdateCmd, speciesCmd,
		deleteCommand(events.ResourceBreed, func(ctx context.Context, id model.ID) error {
			return cafeClient.DeleteBreed(ctx, id)
		}))

	petFlags(petCreateCmd)
	petFlags(petUpdateCmd)
	petCmd.AddCommand(petShowCmd, petCreateCmd, petUpdateCmd,
		deleteCommand(events.ResourcePet, func(ctx context.Context, id model.ID) error {
			return cafeClient.DeletePet(ctx, id)
		}))
}
