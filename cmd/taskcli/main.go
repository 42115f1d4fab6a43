// Command taskcli is a terminal client for the task service. It keeps the
// session token in a local credential store and renders the same derived
// views the web dashboard shows: the sorted/filtered list, the priority
// board, the upcoming widget and the month calendar.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/taskflow/backend/client"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	base := os.Getenv("TASKFLOW_API")
	if base == "" {
		base = "http://localhost:8080"
	}

	store, err := client.OpenCredentialStore(DefaultCredentialPath())
	if err != nil {
		fatal("open credential store: %v", err)
	}
	defer store.Close()

	api := client.New(base)
	if token, err := store.Token(); err == nil && token != "" {
		api.SetToken(token)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(api, store, cmd, args); err != nil {
		if client.IsUnauthenticated(err) {
			fatal("not logged in; run: taskcli login <id-token>")
		}
		fatal("%v", err)
	}
}

func run(api *client.Client, store *client.CredentialStore, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli login <google-id-token>")
		}
		if err := api.Login(args[0]); err != nil {
			return err
		}
		if err := store.Save(api.Token()); err != nil {
			return err
		}
		user, err := api.Session()
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
		return nil

	case "logout":
		_ = api.Logout()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "me":
		user, err := api.Session()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.OwnerID)
		return nil

	case "list":
		return cmdList(api, args)

	case "add":
		return cmdAdd(api, args)

	case "done":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli done <id>")
		}
		completed := true
		updated, err := api.UpdateTask(args[0], client.TaskPatch{Completed: &completed})
		if err != nil {
			return err
		}
		fmt.Printf("done: %s\n", updated.Text)
		return nil

	case "edit":
		return cmdEdit(api, args)

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli rm <id>")
		}
		if err := api.DeleteTask(args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "board":
		return cmdBoard(api)

	case "upcoming":
		return cmdUpcoming(api)

	case "calendar":
		return cmdCalendar(api, args)

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdList(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", "all", "all|completed")
	sortMode := fs.String("sort", "none", "none|dueDate|priority|az")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := api.Tasks()
	if err != nil {
		return err
	}

	state := client.NewState(time.Now())
	state.SetTasks(tasks)
	state.SetFilter(client.Filter(*filter))
	state.SetSortMode(client.SortMode(*sortMode))

	visible := state.Visible()
	if len(visible) == 0 {
		fmt.Println("no tasks match this filter yet")
		return nil
	}
	for _, t := range visible {
		printTask(t)
	}

	completed, total, percent := client.Progress(tasks)
	fmt.Printf("\n%d/%d completed", completed, total)
	if total > 0 {
		fmt.Printf(" (%d%%)", percent)
	}
	fmt.Println()
	return nil
}

func cmdAdd(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	priority := fs.String("priority", "medium", "low|medium|high")
	due := fs.String("due", "", "due date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")

	created, err := api.CreateTask(text, *priority, *due)
	if err != nil {
		return err
	}
	fmt.Printf("added %s\n", created.ID)
	return nil
}

func cmdEdit(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	text := fs.String("text", "", "new task text")
	priority := fs.String("priority", "", "new priority")
	due := fs.String("due", "\x00", "new due date, empty to clear")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskcli edit <id> [-text ...] [-priority ...] [-due ...]")
	}

	var patch client.TaskPatch
	if *text != "" {
		patch.Text = text
	}
	if *priority != "" {
		patch.Priority = priority
	}
	if *due != "\x00" {
		patch.DueDate = due
	}

	updated, err := api.UpdateTask(fs.Arg(0), patch)
	if err != nil {
		return err
	}
	printTask(*updated)
	return nil
}

func cmdBoard(api *client.Client) error {
	tasks, err := api.Tasks()
	if err != nil {
		return err
	}

	board := client.BuildBoard(tasks)
	for _, column := range []struct {
		title string
		tasks []client.Task
	}{
		{"HIGH", board.High},
		{"MEDIUM", board.Medium},
		{"LOW", board.Low},
	} {
		fmt.Printf("== %s ==\n", column.title)
		for _, t := range column.tasks {
			printTask(t)
		}
		fmt.Println()
	}
	return nil
}

func cmdUpcoming(api *client.Client) error {
	tasks, err := api.Tasks()
	if err != nil {
		return err
	}

	upcoming := client.Upcoming(tasks, time.Now())
	if len(upcoming) == 0 {
		fmt.Println("no tasks due in the next two days")
		return nil
	}
	for _, t := range upcoming {
		fmt.Printf("%s  %s\n", t.DueDate, t.Text)
	}
	return nil
}

func cmdCalendar(api *client.Client, args []string) error {
	tasks, err := api.Tasks()
	if err != nil {
		return err
	}

	state := client.NewState(time.Now())
	state.SetTasks(tasks)
	if len(args) == 1 {
		month, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("usage: taskcli calendar [YYYY-MM]")
		}
		state.CalendarMonth = month
	}

	fmt.Println(state.CalendarMonth.Format("January 2006"))
	fmt.Println("Su Mo Tu We Th Fr Sa")
	for i, cell := range state.Grid() {
		if cell == nil {
			fmt.Print("   ")
		} else {
			marker := " "
			if cell.HasTasks {
				marker = "*"
			}
			fmt.Printf("%2d%s", cell.Day, marker)
		}
		if i%7 == 6 {
			fmt.Println()
		}
	}
	fmt.Println()

	for _, t := range client.TasksOn(tasks, state.SelectedDate) {
		fmt.Printf("today: %s [%s]\n", t.Text, t.Priority)
	}
	return nil
}

func printTask(t client.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %-8s %s", mark, t.Priority, t.Text)
	if t.DueDate != "" {
		line += "  (due " + t.DueDate + ")"
	}
	fmt.Printf("%s  %s\n", line, t.ID)
}

// DefaultCredentialPath resolves the credential store location, honoring
// TASKFLOW_SESSION_FILE for tests and unusual setups.
func DefaultCredentialPath() string {
	if path := os.Getenv("TASKFLOW_SESSION_FILE"); path != "" {
		return path
	}
	return client.DefaultCredentialPath()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskcli <command> [flags]

commands:
  login <id-token>   exchange a Google ID token for a session
  logout             clear the session
  me                 show the logged-in identity
  list               list tasks (-filter all|completed, -sort none|dueDate|priority|az)
  add <text...>      add a task (-priority, -due YYYY-MM-DD)
  done <id>          mark a task completed
  edit <id>          update fields (-text, -priority, -due)
  rm <id>            delete a task
  board              tasks grouped by priority
  upcoming           incomplete tasks due in the next two days
  calendar [YYYY-MM] month grid with due-date markers`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
