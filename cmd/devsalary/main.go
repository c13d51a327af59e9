package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
)

// printExamples displays usage examples for the program
func printExamples(w io.Writer) {
	fmt.Fprintln(w, "\n📋 devsalary Usage Examples 📋")
	fmt.Fprintln(w, "\n1. Average salaries for the default languages on both job boards:")
	fmt.Fprintln(w, "   devsalary")

	fmt.Fprintln(w, "\n2. Only Go and Rust vacancies published during the last week:")
	fmt.Fprintln(w, "   devsalary -v golang,rust -p 7")

	fmt.Fprintln(w, "\n3. HeadHunter only, listings with a salary, banner silenced:")
	fmt.Fprintln(w, "   devsalary --source hh --only-with-salary --silence python java")

	fmt.Fprintln(w, "\n4. Both vendors plus a combined table, four keywords in flight at once:")
	fmt.Fprintln(w, "   devsalary --combined --workers 4 --retries 3")

	fmt.Fprintln(w, "\n5. SuperJob through a proxy with the key from a .env file:")
	fmt.Fprintln(w, "   echo API_KEY_SUPERJOB=v3.r.123 > .env && devsalary --source superjob --proxy http://localhost:8080")

	fmt.Fprintln(w, "\n6. Coloured averages, Russian headers and debug logging to a custom file:")
	fmt.Fprintln(w, "   devsalary --color --russian --debug --log-file /tmp/devsalary.log")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		os.Exit(1)
	}
}
