// Package tadbit identifies Topologically Associating Domains (TADs) in
// Hi-C contact matrices by segmenting a symmetric square matrix of
// interaction counts into contiguous diagonal blocks whose counts are
// well-explained by a two-parameter Poisson regression, choosing both the
// positions and the number of breakpoints that maximise a penalised
// log-likelihood across one or more replicate matrices.
package tadbit
