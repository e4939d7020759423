package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	apiclient "github.com/Gusdevr/API-cadastrar-usu-rio-protegido/pkg/api/client"
)

type cliConfig struct {
	APIBaseURL  string `json:"api_base_url"`
	AccessToken string `json:"access_token"`
}

var buildVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "register":
		err = commandRegister(args)
	case "login":
		err = commandLogin(args)
	case "list":
		err = commandList(args)
	case "delete":
		err = commandDelete(args)
	case "me":
		err = commandMe(args)
	case "version", "--version", "-v":
		fmt.Printf("userctl %s\n", buildVersion)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func commandRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return errors.New("--name is required")
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}

	cfg, _ := loadConfig()
	applyBaseURL(&cfg, *apiBase)

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	user, err := client.Register(ctx, *name, *email, secret)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", user.Name, user.ID)
	return nil
}

func commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}

	cfg, _ := loadConfig()
	applyBaseURL(&cfg, *apiBase)

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	token, err := client.Login(ctx, *email, secret)
	if err != nil {
		return err
	}
	cfg.AccessToken = token
	if err := saveConfig(cfg); err != nil {
		return err
	}
	fmt.Println("login successful")
	return nil
}

func commandList(args []string) error {
	client, cfg, err := authedClient(args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	users, err := client.ListUsers(ctx, cfg.AccessToken)
	if err != nil {
		return err
	}
	for _, user := range users {
		fmt.Printf("%s\t%s\t%s\n", user.ID, user.Name, user.Email)
	}
	return nil
}

func commandDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "User id to delete")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}

	cfg, err := loadConfig()
	if err != nil || cfg.AccessToken == "" {
		return errors.New("not logged in, run: userctl login")
	}
	applyBaseURL(&cfg, *apiBase)

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.DeleteUser(ctx, cfg.AccessToken, *id); err != nil {
		return err
	}
	fmt.Println("user deleted")
	return nil
}

func commandMe(args []string) error {
	client, cfg, err := authedClient(args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	user, err := client.Me(ctx, cfg.AccessToken)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> id=%s\n", user.Name, user.Email, user.ID)
	return nil
}

func authedClient(args []string) (*apiclient.Client, cliConfig, error) {
	fs := flag.NewFlagSet("authed", flag.ExitOnError)
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	cfg, err := loadConfig()
	if err != nil || cfg.AccessToken == "" {
		return nil, cliConfig{}, errors.New("not logged in, run: userctl login")
	}
	applyBaseURL(&cfg, *apiBase)

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return nil, cliConfig{}, err
	}
	return client, cfg, nil
}

func resolvePassword(flagValue string) (string, error) {
	secret := strings.TrimSpace(flagValue)
	if secret != "" {
		return secret, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Print("\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func applyBaseURL(cfg *cliConfig, override string) {
	if strings.TrimSpace(override) != "" {
		cfg.APIBaseURL = override
	} else if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:4000"
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "userctl", "config.json"), nil
}

func loadConfig() (cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return cliConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cliConfig{}, err
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func saveConfig(cfg cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`userctl - interact with the user API

Usage:
  userctl register --name NAME --email EMAIL [--password PASS] [--api URL]
  userctl login --email EMAIL [--password PASS] [--api URL]
  userctl list [--api URL]
  userctl delete --id ID [--api URL]
  userctl me [--api URL]
  userctl version`)
}
