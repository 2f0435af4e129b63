// Package datepicker implements the Datepicker hook.
//
// The hook shows dates as dd/mm/yyyy and stores them as yyyy-mm-dd in a
// hidden input the page's form layer owns. The server may re-render that
// input at any time, including with the value missing, so the hook keeps its
// own view of the selection and reconciles every inbound value against it:
//
//   - Date and Month are the value types; Parse and Date.Display convert
//     between the stored and displayed forms.
//   - Store holds the externally visible value and the last value the hook
//     wrote itself.
//   - Grid is the stateless month view; it produces Intents.
//   - Reconciler is the state machine that decides what every inbound value
//     and every user selection does to the selection and the store.
//
// Expected anchor markup:
//
//	<div id="due" v-hook='Datepicker:{"locale":"es"}' data-readonly="false">
//	  <input type="hidden" data-value-input name="due" value="2025-03-10">
//	  <input type="text" data-display-input readonly>
//	  <button data-toggle-button>...</button>
//	  <div data-calendar class="hidden"></div>
//	</div>
package datepicker
