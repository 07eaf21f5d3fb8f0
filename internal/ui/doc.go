// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow around the discovery feed:
//  1. [LoginView] : Sign in with email and password
//  2. [DiscoverView] : Swipe through candidates one card at a time
//  3. [MatchListView] : Browse and remove matches
//  4. [ProfileView] : Review the signed-in account
//  5. [ResultView] : Celebrate a mutual match
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving typed messages from tea.Cmd closures.
// Likes advance the deck immediately and settle in the background; a mutual match raises the [ResultView] banner once the backend confirms it.
//
// Keyboard navigation uses vim-style bindings (j/k, l/s to like/skip, m/d/p to switch views, q to quit) with contextual help displayed via charmbracelet/bubbles/help.
package ui
