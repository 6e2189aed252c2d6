// Package pacing provides a deterministic capital allocation and pacing
// engine for closed-end funds. Given a fund commitment, a cadence of
// contributions and distributions, a set of investment cohorts and a
// pacing/reserve policy, it simulates the fund period by period and computes
// how much capital is deployable, how it splits across cohorts, and what
// reserve remains.
//
// The core functionalities include:
//   - Unit Normalization: monetary input is converted once, at the boundary,
//     into integer minor units (cents) with banker's rounding; the simulation
//     core is integer-only so results are bit-for-bit reproducible.
//   - Period Scheduling: a monthly grid over the fund timeline, grouped into
//     quarterly or annual periods, with a truncated final period.
//   - Cohort Registry: named allocation buckets with active windows and
//     relative weights, renormalized per period.
//   - Reserve & Pacing: the effective buffer and per-period pacing targets,
//     with explicit capacity vs net-of-buffer reserve semantics.
//   - Allocation: pro-rata splits reconciled with the largest-remainder
//     method, per-cohort caps and deterministic spill redistribution.
//   - Simulation: a strictly chronological fold producing an immutable,
//     auditable history of period states and summary aggregates.
//
// This package serves as the foundational logic for the `pce` command-line
// tool; it performs no I/O and is safe to run concurrently across
// independent inputs.
package pacing
