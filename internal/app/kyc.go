package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/uistate"
	"go.trai.ch/zerr"
)

// KYCStatus returns the KYC state and positions the flow at the first unfinished step.
func (a *App) KYCStatus(ctx context.Context) (domain.VerificationStatus, error) {
	status, err := value(a.logger, a.svc.Verification.Status(ctx))
	if err != nil {
		return status, err
	}
	a.kyc.SetStep(nextStep(status))
	return status, nil
}

// Flow returns the KYC flow state.
func (a *App) Flow() uistate.VerificationFlowState {
	return a.kyc.Get()
}

func nextStep(status domain.VerificationStatus) uistate.VerificationStep {
	switch {
	case !status.BVNVerified:
		return uistate.StepBVN
	case status.DocumentStatus == domain.VerificationNotStarted || status.DocumentStatus == domain.VerificationRejected:
		return uistate.StepDocument
	case status.SelfieStatus == domain.VerificationNotStarted || status.SelfieStatus == domain.VerificationRejected:
		return uistate.StepSelfie
	default:
		return uistate.StepReview
	}
}

// SubmitBVN submits a Bank Verification Number.
func (a *App) SubmitBVN(ctx context.Context, bvn string) (domain.VerificationStatus, error) {
	status, err := outcome(a.svc.Verification.SubmitBVN(ctx, domain.BVNRequest{BVN: bvn}))
	a.kyc.SetError(err)
	if err != nil {
		return status, err
	}
	a.kyc.SetStep(nextStep(status))
	return status, nil
}

// Upload submits the file at path as a KYC document or selfie. The MIME type is detected
// from the file's content.
func (a *App) Upload(ctx context.Context, kind, path string) (domain.Document, error) {
	var (
		setUploading func(bool)
		send         = a.svc.Verification.UploadDocument
		step         = uistate.StepSelfie
	)
	switch kind {
	case domain.UploadDocument:
		setUploading = a.kyc.SetDocumentUploading
	case domain.UploadSelfie:
		setUploading = a.kyc.SetSelfieUploading
		send = a.svc.Verification.UploadSelfie
		step = uistate.StepReview
	default:
		return domain.Document{}, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "unknown upload kind"), "kind", kind)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.Document{}, zerr.With(zerr.Wrap(err, "failed to read upload"), "path", path)
	}
	//nolint:gosec // Path is provided by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return domain.Document{}, zerr.With(zerr.Wrap(err, "failed to open upload"), "path", path)
	}
	defer func() { _ = f.Close() }()

	setUploading(true)
	defer setUploading(false)

	doc, err := outcome(send(ctx, domain.UploadRequest{
		Filename:    filepath.Base(path),
		ContentType: mtype.String(),
		Content:     f,
	}))
	a.kyc.SetError(err)
	if err != nil {
		return doc, err
	}
	a.kyc.SetStep(step)
	return doc, nil
}
