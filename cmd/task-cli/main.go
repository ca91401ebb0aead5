// Package main реализует консольный клиент трекера задач.
//
// Адрес сервера задается переменной окружения TASK_TRACKER_ADDR
// (по умолчанию http://localhost:8080). Токены сессии хранятся
// в ~/.task-tracker/session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/magabrotheeeer/task-tracker/internal/client/api"
	"github.com/magabrotheeeer/task-tracker/internal/client/session"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

const defaultAddr = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	addr := os.Getenv("TASK_TRACKER_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		fatal(err)
	}
	sess, err := session.NewManager(sessionPath)
	if err != nil {
		fatal(err)
	}
	client := api.New(addr, sess)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, client)
	case "login":
		err = runLogin(ctx, client)
	case "logout":
		err = client.Logout(ctx)
	case "list":
		err = runList(ctx, client, os.Args[2:])
	case "add":
		err = runAdd(ctx, client, os.Args[2:])
	case "show":
		err = runShow(ctx, client, os.Args[2:])
	case "done":
		err = runDone(ctx, client, os.Args[2:])
	case "rm":
		err = runRemove(ctx, client, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "not logged in, run: task-cli login")
			os.Exit(1)
		}
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: task-cli <command> [arguments]

commands:
  register        create a new account
  login           sign in and store the session token
  logout          revoke the token and clear the session
  list            list your tasks
  add <title>     create a task
  show <id>       show one task
  done <id>       mark a task completed
  rm <id>         delete a task`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// readCredentials запрашивает email и пароль; пароль читается без эха.
func readCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return email, string(password), nil
}

func runRegister(ctx context.Context, client *api.Client) error {
	email, password, err := readCredentials()
	if err != nil {
		return err
	}
	res, err := client.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("registered as %s\n", res.User.Email)
	return nil
}

func runLogin(ctx context.Context, client *api.Client) error {
	email, password, err := readCredentials()
	if err != nil {
		return err
	}
	res, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", res.User.Email)
	return nil
}

func runList(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 100, "maximum number of tasks")
	offset := fs.Int("offset", 0, "number of tasks to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := client.ListTasks(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}
	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

func runAdd(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	priority := fs.String("priority", "", "low, medium or high")
	description := fs.String("desc", "", "task description")
	due := fs.String("due", "", "due date in RFC3339 format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("add: title is required")
	}

	req := models.DummyTask{
		Title:    strings.Join(fs.Args(), " "),
		Priority: *priority,
		DueDate:  *due,
	}
	if *description != "" {
		req.Description = description
	}

	created, err := client.CreateTask(ctx, req)
	if err != nil {
		return err
	}
	printTask(created)
	return nil
}

func runShow(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("show: task id is required")
	}
	found, err := client.ReadTask(ctx, args[0])
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return errors.New("task not found")
		}
		return err
	}
	printTask(found)
	return nil
}

func runDone(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("done: task id is required")
	}
	completed, err := client.CompleteTask(ctx, args[0])
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return errors.New("task not found")
		}
		return err
	}
	printTask(completed)
	return nil
}

func runRemove(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("rm: task id is required")
	}
	if err := client.RemoveTask(ctx, args[0]); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return errors.New("task not found")
		}
		return err
	}
	fmt.Println("removed")
	return nil
}

func printTask(t *models.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s (%s)", mark, t.ID, t.Title, t.Priority)
	if t.DueDate != nil {
		line += "  due " + t.DueDate.Format(time.RFC3339)
	}
	fmt.Println(line)
	if t.Description != nil && *t.Description != "" {
		fmt.Println("    " + *t.Description)
	}
}
