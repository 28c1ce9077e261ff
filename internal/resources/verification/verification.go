// Package verification reads the KYC status and submits BVN, identity documents and
// selfies.
package verification

import (
	"context"
	"net/http"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/resources/profile"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// Keys identifying verification reads.
var (
	// All is the prefix of every verification entry.
	All = domain.Key(domain.ResourceVerification)
	// StatusKey addresses the KYC status.
	StatusKey = domain.Key(domain.ResourceVerification, "status")
)

// Service exposes KYC reads and writes.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

// Status returns the KYC state of the account.
func (s *Service) Status(ctx context.Context) domain.QueryResult[domain.VerificationStatus] {
	return resource.Read(ctx, s.deps, StatusKey,
		resource.Get[domain.VerificationStatus](s.deps.Gateway, "/kyc/status", nil))
}

// KYC writes change the user's level, so they invalidate the profile too.
func affected() mutation.Option {
	return mutation.Invalidates(All, profile.All)
}

// SubmitBVN submits a Bank Verification Number.
func (s *Service) SubmitBVN(ctx context.Context, req domain.BVNRequest) domain.MutationResult[domain.VerificationStatus] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		resource.Send[*domain.BVNRequest, domain.VerificationStatus](s.deps.Gateway, http.MethodPost, "/kyc/bvn"),
		mutation.Name("verification.bvn"),
		affected(),
	)
}

// UploadDocument submits an identity document.
func (s *Service) UploadDocument(ctx context.Context, req domain.UploadRequest) domain.MutationResult[domain.Document] {
	req.Kind = domain.UploadDocument
	return s.upload(ctx, req, "/kyc/document")
}

// UploadSelfie submits a selfie for liveness checks.
func (s *Service) UploadSelfie(ctx context.Context, req domain.UploadRequest) domain.MutationResult[domain.Document] {
	req.Kind = domain.UploadSelfie
	return s.upload(ctx, req, "/kyc/selfie")
}

// upload sends the file once. The content reader is consumed by the first attempt, so
// uploads are never retried.
func (s *Service) upload(ctx context.Context, req domain.UploadRequest, path string) domain.MutationResult[domain.Document] {
	send := func(ctx context.Context, up *domain.UploadRequest) (domain.Document, error) {
		return resource.Call[domain.Document](ctx, s.deps.Gateway, domain.APIRequest{
			Method: http.MethodPost,
			Path:   path,
			Upload: up,
		})
	}
	return mutation.Submit(ctx, s.deps.Mutations, &req, send,
		mutation.Name("verification."+req.Kind),
		mutation.Retry(1),
		affected(),
	)
}
