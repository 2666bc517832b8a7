// Package harness runs configurator sessions from YAML scenario files and
// checks the resulting trace and final state.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: optional/override.cue
//	flow:
//	  - action: users.set
//	    option: 5k
//	    expect:
//	      part_number: AT-5K
//	  - action: step.advance
//	    expect:
//	      step: biometric
//	  - action: step.advance
//	    expect:
//	      blocked: true
//	  - action: users.set
//	    option: 9k
//	    expect:
//	      error: unknown_option
//	assertions:
//	  - type: part_number
//	    equals: AT-5K-FLI-SM-C
//	  - type: selected
//	    group: biometric
//	    ids: [face, finger]
//	  - type: expr
//	    expr: 'network_default && len(features) == 1'
//
// # Assertion Types
//
//   - part_number: the final part number equals the given value
//   - step: the final step equals the given step key or title
//   - selected: the final selection of a group equals the given ids
//     (catalog order for biometric and network, click order for features)
//   - trace_contains: an applied action (optionally with option) appears in the trace
//   - trace_order: actions appear in the given order
//   - trace_count: an action was applied exactly N times
//   - expr: a boolean github.com/expr-lang/expr expression over the final state
//
// # Deterministic Testing
//
// Every scenario runs on a fresh session with a logical clock starting at
// zero and a discard logger, so traces are identical across runs and can be
// compared against golden files.
package harness
