package uistate

// VerificationStep is a screen of the KYC flow.
type VerificationStep int

// KYC flow steps, in order.
const (
	StepBVN VerificationStep = iota
	StepDocument
	StepSelfie
	StepReview
)

func (s VerificationStep) String() string {
	switch s {
	case StepBVN:
		return "bvn"
	case StepDocument:
		return "document"
	case StepSelfie:
		return "selfie"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// VerificationFlowState tracks progress through the KYC screens.
type VerificationFlowState struct {
	Step              VerificationStep
	DocumentUploading bool
	SelfieUploading   bool
	LastError         string
}

// Busy reports whether an upload is in progress.
func (s VerificationFlowState) Busy() bool {
	return s.DocumentUploading || s.SelfieUploading
}

// VerificationFlow is the KYC flow's state store.
type VerificationFlow struct {
	*Store[VerificationFlowState]
}

// NewVerificationFlow creates the store at the first step.
func NewVerificationFlow() *VerificationFlow {
	return &VerificationFlow{NewStore(func() VerificationFlowState { return VerificationFlowState{} })}
}

// SetStep jumps to step.
func (f *VerificationFlow) SetStep(step VerificationStep) {
	f.Update(func(s *VerificationFlowState) { s.Step = step })
}

// Advance moves to the next step and clears the last error. The review step is final.
func (f *VerificationFlow) Advance() {
	f.Update(func(s *VerificationFlowState) {
		if s.Step < StepReview {
			s.Step++
		}
		s.LastError = ""
	})
}

// SetDocumentUploading flags the document upload as in progress.
func (f *VerificationFlow) SetDocumentUploading(uploading bool) {
	f.Update(func(s *VerificationFlowState) { s.DocumentUploading = uploading })
}

// SetSelfieUploading flags the selfie upload as in progress.
func (f *VerificationFlow) SetSelfieUploading(uploading bool) {
	f.Update(func(s *VerificationFlowState) { s.SelfieUploading = uploading })
}

// SetError records the failure shown on the current step. A nil err clears it.
func (f *VerificationFlow) SetError(err error) {
	f.Update(func(s *VerificationFlowState) {
		s.LastError = ""
		if err != nil {
			s.LastError = err.Error()
		}
	})
}
