// Package notify delivers upload notices to the user.
//
// ConsoleNotifier prints one styled line per notice for the CLI.
// ChannelNotifier hands notices to a consumer such as the TUI, which
// shows them as a dismissible toast in its status bar.
package notify
