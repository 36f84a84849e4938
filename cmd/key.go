package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored LLM API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store an API key for AI features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.CredentialRepo().Set(cmd.Context(), key); err != nil {
			return fmt.Errorf("store key: %w", err)
		}
		fmt.Println("API key saved. The provider is picked from PREPDECK_LLM_PROVIDER (default: gemini).")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether an API key is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		key, err := st.CredentialRepo().Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if key == "" {
			fmt.Println("No API key stored.")
			return nil
		}
		fmt.Printf("API key stored: %s\n", maskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.CredentialRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear key: %w", err)
		}
		fmt.Println("API key removed.")
		return nil
	},
}

// maskKey keeps enough of the key to recognize it without exposing it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
