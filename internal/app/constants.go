package app

// MinCastSize is the smallest cast a season can start with. Below four
// competitors the weekly cycle cannot produce a head of household and two
// nominees.
const MinCastSize = 4
