// Package fundwatch tracks personal holdings in mutual funds identified by a
// 6-digit fund code, and turns free-form holding statements into
// review-ready records.
//
// The core functionalities include:
//   - Extraction: scanning pasted text (exports from other apps or typed by
//     hand) for lines shaped like "code marketValue gain", see [Extract].
//   - Resolution: completing each extracted [Candidate] with a fund code, a
//     display name and the number of units held, back-calculated from the
//     market value and the fund's latest published unit price, see
//     [Resolver].
//   - Positions: valuing confirmed holdings against live estimates and
//     exporting them back to the text format accepted by [Extract].
//
// Remote services are reached through the [Searcher] and [Valuer]
// interfaces, implemented by the eastmoney and fundgz packages.
//
// This package serves as the foundational logic for the `fw` command-line
// tool.
package fundwatch
