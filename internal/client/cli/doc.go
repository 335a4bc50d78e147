// Package cli provides the interactive NutriTrack command-line client.
//
// It wires configuration, the spreadsheet backend, the local fallback store,
// and the AI estimator into an interactive REPL. Typical flow: authenticate
// (or pick a local profile), complete onboarding if no profile exists yet,
// and then log meals and weight throughout the day.
//
// Key features:
//   - Login against the spreadsheet backend, or offline local mode
//   - Onboarding with AI-derived daily targets
//   - Log meals by photo or description, with AI macro estimation
//   - Dashboard: today's intake, remaining budget, calorie deficits
//   - Weight tracking with automatic profile weight updates
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
