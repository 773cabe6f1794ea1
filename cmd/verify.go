package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

var (
	verifyHashfile  string
	verifySignature string
	verifyKeyring   string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <artifact>",
	Short: "Check a downloaded artifact against its signed hash file",
	Long: `Verify the detached signature over the artifact's hash file with the given
public keyring, then recompute the artifact digest and compare it with the
hash file entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyHashfile, "hashfile", "", "hash file (default <artifact>"+integrity.HashfileSuffix+")")
	verifyCmd.Flags().StringVar(&verifySignature, "signature", "", "signature (default <hashfile>"+integrity.SignatureSuffix+")")
	verifyCmd.Flags().StringVar(&verifyKeyring, "keyring", "", "armored public keyring")
	_ = verifyCmd.MarkFlagRequired("keyring")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	artifact := args[0]
	hashfile := verifyHashfile
	if hashfile == "" {
		hashfile = artifact + integrity.HashfileSuffix
	}
	sig := verifySignature
	if sig == "" {
		sig = hashfile + integrity.SignatureSuffix
	}

	keyring, err := integrity.LoadKeyring(verifyKeyring)
	if err != nil {
		return err
	}
	signer, err := keyring.VerifyArtifact(artifact, hashfile, sig)
	if err != nil {
		return err
	}

	who := fmt.Sprintf("%016X", signer.PrimaryKey.KeyId)
	if id := signer.PrimaryIdentity(); id != nil {
		who = id.Name + " (" + who + ")"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  signed by %s\n",
		styles.SuccessStyle.Render(styles.MarkDone), filepath.Base(artifact), who)
	return nil
}
