package testutil

// UnsortedCSS declares its custom properties out of order, after a regular
// declaration and with --b declared twice. The duplicate is on line 4,
// character 2.
const UnsortedCSS = `.a {
  color: red;
  --b: 1;
  --a: 2;
  --b: 3;
}`

// SortedCSS is UnsortedCSS after sorting
const SortedCSS = `.a {
  --a: 2;
  --b: 3;

  color: red;
}`
