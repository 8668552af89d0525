package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"presence-backend/internal/biometric"
	"presence-backend/internal/blob"
	"presence-backend/internal/model"
	"presence-backend/internal/repository"
)

type RegisterWorkerInput struct {
	WorkerID        string
	Name            string
	OfficeID        uint
	Descriptor      []float64
	FaceImageBase64 string
}

type WorkerUsecase struct {
	workerRepo repository.WorkerRepository
	officeRepo repository.OfficeRepository
	images     blob.Store
	log        *slog.Logger
}

func NewWorkerUsecase(workerRepo repository.WorkerRepository, officeRepo repository.OfficeRepository, images blob.Store, log *slog.Logger) *WorkerUsecase {
	return &WorkerUsecase{
		workerRepo: workerRepo,
		officeRepo: officeRepo,
		images:     images,
		log:        log.With("module", "worker"),
	}
}

// Register creates a worker or, when the worker ID is already taken,
// re-registers it: name, office, descriptor and photo are replaced. It
// reports whether a new worker was created.
func (u *WorkerUsecase) Register(ctx context.Context, in RegisterWorkerInput) (*model.Worker, bool, error) {
	// 1. Validate input
	in.WorkerID = strings.TrimSpace(in.WorkerID)
	in.Name = strings.TrimSpace(in.Name)
	if in.WorkerID == "" || in.Name == "" {
		return nil, false, fmt.Errorf("%w: worker_id and name are required", ErrInvalidInput)
	}
	if len(in.Descriptor) != biometric.VectorLength {
		return nil, false, fmt.Errorf("%w: descriptor must have %d values", ErrInvalidInput, biometric.VectorLength)
	}
	// A descriptor that cannot even match itself can never match anything.
	if _, err := biometric.Compare(in.Descriptor, in.Descriptor); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Office must exist
	office, err := u.officeRepo.GetByID(ctx, in.OfficeID)
	if err != nil {
		return nil, false, fmt.Errorf("office %d: %w", in.OfficeID, err)
	}

	// 3. Store face photo
	imageURL := ""
	if in.FaceImageBase64 != "" && u.images != nil {
		imageURL, err = u.images.SaveBase64(ctx, "face_images", in.FaceImageBase64)
		if err != nil {
			return nil, false, fmt.Errorf("%w: face image: %v", ErrInvalidInput, err)
		}
	}

	descriptor := make([]float64, len(in.Descriptor))
	copy(descriptor, in.Descriptor)

	// 4. Create or re-register
	worker, err := u.workerRepo.FindByExternalID(ctx, in.WorkerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		worker = &model.Worker{
			ExternalID:   in.WorkerID,
			Name:         in.Name,
			OfficeID:     office.ID,
			FaceImageURL: imageURL,
			FaceEncoding: descriptor,
		}
		if err := u.workerRepo.Create(ctx, worker); err != nil {
			return nil, false, fmt.Errorf("create worker: %w", err)
		}
		worker.Office = office
		u.log.Info("worker registered", "worker_id", worker.ExternalID, "office_id", office.ID)
		return worker, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("find worker %q: %w", in.WorkerID, err)
	}

	worker.Name = in.Name
	worker.OfficeID = office.ID
	worker.FaceEncoding = descriptor
	if imageURL != "" {
		worker.FaceImageURL = imageURL
	}
	if err := u.workerRepo.Update(ctx, worker); err != nil {
		return nil, false, fmt.Errorf("update worker: %w", err)
	}
	worker.Office = office
	u.log.Info("worker re-registered", "worker_id", worker.ExternalID, "office_id", office.ID)
	return worker, false, nil
}

func (u *WorkerUsecase) Get(ctx context.Context, externalID string) (*model.Worker, error) {
	worker, err := u.workerRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return u.workerRepo.FindByID(ctx, worker.ID)
}

func (u *WorkerUsecase) List(ctx context.Context, search string) ([]model.Worker, error) {
	return u.workerRepo.GetAll(ctx, search)
}

// Delete removes the worker with its attendance, location records and alerts.
func (u *WorkerUsecase) Delete(ctx context.Context, externalID string) error {
	worker, err := u.workerRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if err := u.workerRepo.Delete(ctx, worker.ID); err != nil {
		return fmt.Errorf("delete worker %q: %w", externalID, err)
	}
	u.log.Info("worker deleted", "worker_id", externalID)
	return nil
}
