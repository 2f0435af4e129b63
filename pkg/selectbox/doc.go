// Package selectbox turns a list of options into a searchable dropdown.
//
// Expected anchor markup:
//
//	<div id="country" v-hook="SearchableSelect">
//	  <input type="hidden" data-value-input name="country" value="mx">
//	  <button type="button" data-toggle-button>
//	    <span data-display-text>Seleccione...</span>
//	    <svg data-chevron>...</svg>
//	  </button>
//	  <div data-dropdown class="hidden">
//	    <input data-search-input placeholder="Buscar...">
//	    <ul data-options-list>
//	      <li data-option data-value="ar">Argentina</li>
//	      <li data-option data-value="mx">México</li>
//	    </ul>
//	  </div>
//	</div>
//
// Filtering is a case-insensitive substring match on option labels using
// Unicode case folding. Keyboard handling follows the search input:
// ArrowDown and ArrowUp move the highlight within the visible options,
// Enter picks it and Escape closes and returns focus to the toggle.
package selectbox
