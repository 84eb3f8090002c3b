// travel-cli is a small terminal chat client for the travel assistant API.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	apiURL    string
	sessionID string
)

func main() {
	root := &cobra.Command{
		Use:   "travel-cli",
		Short: "Chat with the travel assistant from the terminal",
		RunE:  runChat,
	}
	root.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the travel assistant API")
	root.Flags().StringVar(&sessionID, "session", "", "session id to resume (default: new session)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type chatRequest struct {
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
}

type chatResponse struct {
	SessionID        string `json:"session_id"`
	AssistantMessage string `json:"assistant_message"`
}

func runChat(cmd *cobra.Command, args []string) error {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	client := &http.Client{Timeout: 60 * time.Second}

	fmt.Printf("session: %s\n", sessionID)
	fmt.Println("type a message, or /new, /session, /exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/exit", "/quit":
			return nil
		case "/new":
			sessionID = uuid.NewString()
			fmt.Printf("session: %s\n", sessionID)
			continue
		case "/session":
			fmt.Printf("session: %s\n", sessionID)
			continue
		}

		reply, err := sendMessage(client, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
}

func sendMessage(client *http.Client, message string) (string, error) {
	body, err := json.Marshal(chatRequest{SessionID: sessionID, UserMessage: message})
	if err != nil {
		return "", err
	}

	res, err := client.Post(apiURL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var payload map[string]string
		_ = json.NewDecoder(res.Body).Decode(&payload)
		if msg := payload["error"]; msg != "" {
			return "", fmt.Errorf("api returned %d: %s", res.StatusCode, msg)
		}
		return "", fmt.Errorf("api returned %d", res.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.AssistantMessage, nil
}
