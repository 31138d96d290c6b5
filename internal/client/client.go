// Package client provides a transport-agnostic interface for the cafe REST
// API and an HTTP/JSON implementation of it.
//
// Every operation follows the same shape: validate the input locally, call
// the endpoint, normalise the response into model types. Callers turn
// failures into user-facing text with Localize.
package client

import (
	"context"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

// CafeClient is the interface the CLI, the page registry and the gateway use
// to talk to the cafe API. It is implemented by HTTPClient; tests substitute
// in-memory fakes.
type CafeClient interface {
	// Auth
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error

	// Pets
	ListPets(ctx context.Context, opts ListOptions) (*ListResult[model.Pet], error)
	GetPet(ctx context.Context, id model.ID) (*model.Pet, error)
	CreatePet(ctx context.Context, in *model.PetInput) (*model.Pet, error)
	UpdatePet(ctx context.Context, id model.ID, in *model.PetInput) (*model.Pet, error)
	DeletePet(ctx context.Context, id model.ID) error

	// Catalog
	ListSpecies(ctx context.Context) ([]model.Species, error)
	ListBreeds(ctx context.Context, opts ListOptions) (*ListResult[model.Breed], error)
	CreateBreed(ctx context.Context, in *model.BreedInput) (*model.Breed, error)
	UpdateBreed(ctx context.Context, id model.ID, in *model.BreedInput) (*model.Breed, error)
	DeleteBreed(ctx context.Context, id model.ID) error
	ListVaccineTypes(ctx context.Context, opts ListOptions) (*ListResult[model.VaccineType], error)
	CreateVaccineType(ctx context.Context, in *model.VaccineTypeInput) (*model.VaccineType, error)
	UpdateVaccineType(ctx context.Context, id model.ID, in *model.VaccineTypeInput) (*model.VaccineType, error)
	DeleteVaccineType(ctx context.Context, id model.ID) error

	// Schedule
	ListTaskTemplates(ctx context.Context, opts ListOptions) (*ListResult[model.TaskTemplate], error)
	CreateTaskTemplate(ctx context.Context, in *model.TaskTemplateInput) (*model.TaskTemplate, error)
	UpdateTaskTemplate(ctx context.Context, id model.ID, in *model.TaskTemplateInput) (*model.TaskTemplate, error)
	DeleteTaskTemplate(ctx context.Context, id model.ID) error
	ListSlots(ctx context.Context, opts ListOptions) (*ListResult[model.Slot], error)
	CreateSlot(ctx context.Context, in *model.SlotInput) (*model.Slot, error)
	UpdateSlot(ctx context.Context, id model.ID, in *model.SlotInput) (*model.Slot, error)
	DeleteSlot(ctx context.Context, id model.ID) error

	// Leave
	ListLeaveRequests(ctx context.Context, opts ListOptions) (*ListResult[model.LeaveRequest], error)
	ListMyLeaveRequests(ctx context.Context, opts ListOptions) (*ListResult[model.LeaveRequest], error)
	CreateLeaveRequest(ctx context.Context, in *model.LeaveRequestInput) (*model.LeaveRequest, error)
	ApproveLeaveRequest(ctx context.Context, id model.ID, notes string) (*model.LeaveRequest, error)
	RejectLeaveRequest(ctx context.Context, id model.ID, notes string) (*model.LeaveRequest, error)
	CancelLeaveRequest(ctx context.Context, id model.ID) (*model.LeaveRequest, error)

	// Team
	ListTeams(ctx context.Context, opts ListOptions) (*ListResult[model.Team], error)
	ListShifts(ctx context.Context, opts ListOptions) (*ListResult[model.Shift], error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}
