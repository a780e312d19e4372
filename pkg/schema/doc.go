/*
Package schema loads machine definitions from YAML.

A definition names the tracked attribute, its states and its events, with
transition requirement maps mirroring the builder API:

	attribute: state
	action: save
	states:
	  - name: parked
	    initial: true
	  - name: idling
	  - name: stalled
	events:
	  - name: ignite
	    transitions:
	      - from: parked
	        to: idling
	  - name: repair
	    transitions:
	      - from: stalled
	        to: parked
	        if: [auto_shop_available]

Validation failures are aggregated so a definition reports every problem at
once instead of the first.
*/
package schema
