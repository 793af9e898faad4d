// Package wotan estimates routing-resource graph reliability: the
// probability that representative source-to-sink connections across an
// FPGA's routing fabric remain reachable once per-node routing demand and
// optional self-congestion discounting are taken into account.
//
// Run is the single entry point: load an RR-graph XML file (package rrio),
// derive Analysis Settings (package settings), dispatch a worker pool
// (package worker) over the resulting (source,sink) connection jobs, each
// driven by the Distance Oracle (package ssdist) and Topological Engine
// (package topo) with the Path Enumerator (package pathenum) and
// Probability Analyzer (package probanalysis) riding on top, and aggregate
// the per-job contributions into one reliability estimate.
package wotan
