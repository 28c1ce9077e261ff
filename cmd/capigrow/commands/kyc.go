package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/uistate"
)

func (c *CLI) newKYCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Check and complete identity verification",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show verification progress and the next step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.KYCStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printKYC(cmd.OutOrStdout(), status, c.app.Flow())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "bvn <number>",
		Short: "Submit an 11 digit Bank Verification Number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := c.app.SubmitBVN(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printKYC(cmd.OutOrStdout(), status, c.app.Flow())
		},
	})
	cmd.AddCommand(c.newUploadCmd("upload-document", domain.UploadDocument, "Upload an ID document (JPEG, PNG or PDF)"))
	cmd.AddCommand(c.newUploadCmd("upload-selfie", domain.UploadSelfie, "Upload a selfie (JPEG or PNG)"))
	return cmd
}

func (c *CLI) newUploadCmd(use, kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.app.Upload(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s %s: %s. Next step: %s\n",
				doc.Kind, doc.Filename, doc.Status, c.app.Flow().Step)
			return err
		},
	}
}

func printKYC(w io.Writer, status domain.VerificationStatus, flow uistate.VerificationFlowState) error {
	next := flow.Step.String()
	if status.Complete() {
		next = "none"
	}
	return renderFields(w,
		"Level", strconv.Itoa(status.Level),
		"BVN verified", yesNo(status.BVNVerified),
		"Document", status.DocumentStatus,
		"Selfie", status.SelfieStatus,
		"Overall", status.Overall,
		"Next step", next,
	)
}
