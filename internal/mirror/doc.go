// Package mirror implements the GitHub to Gogs mirroring workflow.
//
// CommandBuilder wires the Cobra command and resolves configuration and
// credentials once up front. Service runs the pipeline: list the account's
// source repositories, keep the ones it owns (optionally dropping forks),
// resolve the target owner, and request one pull mirror per repository,
// reporting a human-readable line for each outcome.
package mirror
