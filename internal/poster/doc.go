// Package poster caches captured tile frames for the life of the process.
//
// Grids hand the shared Cache to every tile controller; the first frame a
// tile captures becomes its poster and later captures are dropped, so a
// tile scrolled away and back shows the same still instead of flickering.
// Ensure deduplicates concurrent capture attempts for one tile through
// singleflight while leaving failed captures uncached so they can retry.
//
// Create one Cache per process and inject it everywhere a grid is built;
// caches deliberately never evict.
package poster
