// Package browser drives tables in a real browser through Playwright.
//
// A SessionManager owns the Playwright runtime and a set of named sessions,
// each wrapping a browser, an isolated context and a page. A session's
// Driver implements table.Driver and components.Actor on top of Playwright
// element handles, so the table engine and the stock components work
// against live pages exactly as they do against htmldoc snapshots.
//
// # Session Lifecycle
//
//  1. Initialize: install Chromium if needed and start Playwright
//  2. StartSession: launch a named browser session
//  3. Use: navigate, wait for the table, read and mutate it via Driver
//  4. Close: Shutdown releases every session and stops Playwright
//
// Idle sessions are closed by CleanupIdleSessions, which ReapIdle runs on a
// ticker for as long as its context lives.
//
// # Example Usage
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	defer manager.Shutdown()
//
//	session, err := manager.StartSession("users", browser.SessionOptions{Headless: true})
//	if err != nil {
//	    return err
//	}
//	if err := session.Navigate("https://example.com/users", browser.NavigateOptions{
//	    WaitUntil: "networkidle",
//	}); err != nil {
//	    return err
//	}
//
//	driver := session.Driver()
//	users := table.New(userSchema, driver, table.WithServices(components.Defaults(driver)))
//	rows, err := users.ReadTable()
//
// Waits for the table container are handled by the driver using the page's
// default timeout; the table engine itself never retries.
package browser
