// Package models defines the core domain models for Planboard.
//
// # Models
//
//   - Division: a business division's planning figures for the upcoming period
//   - AllocationSettings: how headquarters overhead is distributed to divisions
//   - BreakEvenResult: derived break-even and margin figures for one division
//   - UserAccount: a registered dashboard user
//   - LoginAttemptState: consecutive login failures and lockout for one username
//
// # Design Principles
//
//  1. Divisions are immutable inputs: every recomputation receives a fresh
//     snapshot and derives results from it. BreakEvenResult has no persisted
//     identity.
//  2. Settings are validated at the boundary (AllocationSettings.Validate)
//     before they reach the pure calculator.
//  3. No model holds a reference to storage or session state.
package models
