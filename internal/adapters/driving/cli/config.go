package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and configure the ingestion endpoint, its credentials, remote file
sources and upload pacing.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configEndpointCmd = &cobra.Command{
	Use:   "endpoint <base-url>",
	Short: "Set the ingestion API location",
	Example: `  ingest config endpoint https://ingest.example.com
  ingest config endpoint https://api.example.com --connectors-path /v1/connectors --submit-path /v1/ingest`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigEndpoint,
}

var configAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure ingestion API credentials",
	Long: `Choose how requests to the ingestion API are authenticated.

Available methods:
  none               - Unauthenticated endpoint
  token              - Static bearer token
  client_credentials - OAuth 2.0 client credentials grant`,
	RunE: runConfigAuth,
}

var configSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Configure remote file source tokens",
	Long: `Set access tokens for gdrive:// and github:// file references.
Leave a prompt blank to keep the current token.`,
	RunE: runConfigSources,
}

var configUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Configure upload behaviour",
	RunE:  runConfigUpload,
}

func init() {
	configEndpointCmd.Flags().String("connectors-path", "", "path that lists connectors")
	configEndpointCmd.Flags().String("submit-path", "", "path that accepts uploads")
	configEndpointCmd.Flags().Int("timeout", 0, "request timeout in seconds")

	configUploadCmd.Flags().Int("rpm", 0, "maximum upload requests per minute (0 = unlimited)")
	configUploadCmd.Flags().Bool("quote-aware-header", false, "split the header row with CSV quoting rules")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEndpointCmd)
	configCmd.AddCommand(configAuthCmd)
	configCmd.AddCommand(configSourcesCmd)
	configCmd.AddCommand(configUploadCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Endpoint]")
	if settings.Endpoint.IsConfigured() {
		cmd.Printf("  Base URL: %s\n", settings.Endpoint.BaseURL)
	} else {
		cmd.Println("  Base URL: (not set)")
	}
	cmd.Printf("  Connectors path: %s\n", settings.Endpoint.ConnectorsPath)
	cmd.Printf("  Submit path: %s\n", settings.Endpoint.SubmitPath)
	cmd.Printf("  Timeout: %ds\n", settings.Endpoint.TimeoutSeconds)
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Printf("  Method: %s\n", settings.Auth.Method.Description())
	switch settings.Auth.Method {
	case domain.AuthMethodToken:
		cmd.Printf("  Access token: %s\n", maskSecret(settings.Auth.AccessToken))
	case domain.AuthMethodClientCredentials:
		cmd.Printf("  Token URL: %s\n", settings.Auth.TokenURL)
		cmd.Printf("  Client ID: %s\n", settings.Auth.ClientID)
		cmd.Printf("  Client secret: %s\n", maskSecret(settings.Auth.ClientSecret))
		if len(settings.Auth.Scopes) > 0 {
			cmd.Printf("  Scopes: %s\n", strings.Join(settings.Auth.Scopes, " "))
		}
	case domain.AuthMethodNone:
	}
	cmd.Println()

	cmd.Println("[Upload]")
	if settings.Upload.RequestsPerMinute > 0 {
		cmd.Printf("  Requests per minute: %d\n", settings.Upload.RequestsPerMinute)
	} else {
		cmd.Println("  Requests per minute: unlimited")
	}
	cmd.Printf("  Quote-aware header: %t\n", settings.Upload.QuoteAwareHeader)
	cmd.Println()

	cmd.Println("[Sources]")
	cmd.Printf("  Google Drive token: %s\n", maskSecret(settings.Sources.GoogleDriveToken))
	cmd.Printf("  GitHub token: %s\n", maskSecret(settings.Sources.GitHubToken))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigEndpoint(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	connectorsPath, _ := cmd.Flags().GetString("connectors-path")
	submitPath, _ := cmd.Flags().GetString("submit-path")
	timeout, _ := cmd.Flags().GetInt("timeout")

	endpoint := domain.EndpointSettings{
		BaseURL:        strings.TrimRight(args[0], "/"),
		ConnectorsPath: connectorsPath,
		SubmitPath:     submitPath,
		TimeoutSeconds: timeout,
	}
	if err := settingsService.SetEndpoint(endpoint); err != nil {
		return fmt.Errorf("failed to set endpoint: %w", err)
	}
	cmd.Printf("Endpoint set to %s\n", endpoint.BaseURL)
	return nil
}

func runConfigAuth(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select authentication method:")
	methods := domain.AllAuthMethods()
	for i, m := range methods {
		cmd.Printf("  %d. %s\n", i+1, m.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	method := methods[parseChoice(readLine(reader), len(methods), 1)-1]

	auth := domain.AuthSettings{Method: method}
	switch method {
	case domain.AuthMethodToken:
		cmd.Print("Access token: ")
		auth.AccessToken = readPassword(cmd, reader)
		cmd.Println()
	case domain.AuthMethodClientCredentials:
		cmd.Print("Token URL: ")
		auth.TokenURL = readLine(reader)
		cmd.Print("Client ID: ")
		auth.ClientID = readLine(reader)
		cmd.Print("Client secret: ")
		auth.ClientSecret = readPassword(cmd, reader)
		cmd.Println()
		cmd.Print("Scopes (space separated, optional): ")
		auth.Scopes = strings.Fields(readLine(reader))
	case domain.AuthMethodNone:
	}

	if err := settingsService.SetAuth(auth); err != nil {
		return fmt.Errorf("failed to set auth: %w", err)
	}
	cmd.Printf("Authentication set to: %s\n", method.Description())
	return nil
}

func runConfigSources(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Printf("Google Drive access token [%s]: ", maskSecret(settings.Sources.GoogleDriveToken))
	settings.Sources.GoogleDriveToken = readPassword(cmd, reader)
	cmd.Println()
	cmd.Printf("GitHub token [%s]: ", maskSecret(settings.Sources.GitHubToken))
	settings.Sources.GitHubToken = readPassword(cmd, reader)
	cmd.Println()

	// Blank answers are skipped by Save and keep the stored tokens.
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Source tokens saved.")
	return nil
}

func runConfigUpload(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if cmd.Flags().Changed("rpm") {
		rpm, _ := cmd.Flags().GetInt("rpm")
		if rpm < 0 {
			return fmt.Errorf("%w: --rpm must not be negative", domain.ErrInvalidInput)
		}
		settings.Upload.RequestsPerMinute = rpm
	}
	if cmd.Flags().Changed("quote-aware-header") {
		settings.Upload.QuoteAwareHeader, _ = cmd.Flags().GetBool("quote-aware-header")
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Requests per minute: %s\n", formatRPM(settings.Upload.RequestsPerMinute))
	cmd.Printf("Quote-aware header: %t\n", settings.Upload.QuoteAwareHeader)
	return nil
}

func formatRPM(rpm int) string {
	if rpm <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(rpm)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when the command reads from a
// terminal, and falls back to a plain line otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if isTerminal(cmd.InOrStdin()) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && f == os.Stdin && term.IsTerminal(int(f.Fd()))
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
