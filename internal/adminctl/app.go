// Package adminctl is a small maintenance CLI for the Flax admin API. It
// prompts for the admin password once and forwards it with every request;
// the server has no admin session to keep.
package adminctl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flax/internal/common"
)

type App struct {
	baseURL  string
	client   *http.Client
	in       *bufio.Reader
	out      io.Writer
	password string
}

func NewApp(baseURL string, in io.Reader, out io.Writer) *App {
	return &App{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run prompts for the admin password, verifies it and dispatches the
// command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: adminctl <login|users|classes|create-class|change-password>")
	}

	password, err := getPassword("Admin password", a.out)
	if err != nil {
		return err
	}
	a.password = password

	if err := a.login(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "login":
		fmt.Fprintln(a.out, "OK")
		return nil
	case "users":
		return a.listUsers(ctx)
	case "classes":
		return a.listClasses(ctx)
	case "create-class":
		return a.createClass(ctx)
	case "change-password":
		return a.changePassword(ctx)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) login(ctx context.Context) error {
	body := map[string]string{"password": a.password}
	return a.do(ctx, http.MethodPost, "/api/admin/login", body, nil)
}

func (a *App) listUsers(ctx context.Context) error {
	var users []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Username string   `json:"username"`
		Role     string   `json:"role"`
		ClassIDs []string `json:"classIds"`
		Likes    int      `json:"likes"`
		Messages int      `json:"messages"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return err
	}

	for _, u := range users {
		fmt.Fprintf(a.out, "%s  %-5s  @%s (%s)  classes=%d likes=%d messages=%d\n",
			u.ID, u.Role, u.Username, u.Name, len(u.ClassIDs), u.Likes, u.Messages)
	}
	fmt.Fprintf(a.out, "%d user(s)\n", len(users))
	return nil
}

func (a *App) listClasses(ctx context.Context) error {
	var classes []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		Enabled bool   `json:"enabled"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/admin/classes", nil, &classes); err != nil {
		return err
	}

	for _, c := range classes {
		state := "enabled"
		if !c.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(a.out, "%s  code=%s  %-8s  %s\n", c.ID, c.Code, state, c.Name)
	}
	fmt.Fprintf(a.out, "%d class(es)\n", len(classes))
	return nil
}

func (a *App) createClass(ctx context.Context) error {
	name, err := getSimpleText(a.in, "Class name", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.in, fmt.Sprintf("Join code (%d digits)", common.ClassCodeLength), a.out)
	if err != nil {
		return err
	}

	var class struct {
		ID string `json:"id"`
	}
	body := map[string]string{"name": name, "code": code}
	if err := a.do(ctx, http.MethodPost, "/api/admin/classes", body, &class); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created class %s\n", class.ID)
	return nil
}

func (a *App) changePassword(ctx context.Context) error {
	newPassword, err := getPassword("New admin password (5 digits)", a.out)
	if err != nil {
		return err
	}

	body := map[string]string{"currentPassword": a.password, "newPassword": newPassword}
	if err := a.do(ctx, http.MethodPost, "/api/admin/change-password", body, nil); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Admin password updated")
	return nil
}

// do sends one authenticated request and decodes the JSON response into out
// (when out is non-nil). Error responses surface the server's message.
func (a *App) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set(common.AdminPasswordHeaderName, a.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
